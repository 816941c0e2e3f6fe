package diffpattern

// Category is the classification label assigned to a change group.
type Category int

// Categories, in the order renderers list them.
const (
	CategoryOther Category = iota
	CategoryMarkupElement
	CategoryMarkupAttribute
	CategoryMarkupContent
	CategorySourceMethod
	CategorySourceProperty
	CategorySourceImport
	CategoryConfiguration
	CategoryDocumentation // Reserved; no classification rule assigns it yet
)

var categoryNames = map[Category]string{
	CategoryOther:           "Other",
	CategoryMarkupElement:   "MarkupElement",
	CategoryMarkupAttribute: "MarkupAttribute",
	CategoryMarkupContent:   "MarkupContent",
	CategorySourceMethod:    "SourceMethod",
	CategorySourceProperty:  "SourceProperty",
	CategorySourceImport:    "SourceImport",
	CategoryConfiguration:   "Configuration",
	CategoryDocumentation:   "Documentation",
}

var categoryDisplayNames = map[Category]string{
	CategoryOther:           "Other",
	CategoryMarkupElement:   "XML element",
	CategoryMarkupAttribute: "XML attribute",
	CategoryMarkupContent:   "XML content",
	CategorySourceMethod:    "C# method",
	CategorySourceProperty:  "C# property",
	CategorySourceImport:    "C# import",
	CategoryConfiguration:   "Configuration change",
	CategoryDocumentation:   "Documentation",
}

// String returns the machine name of the category (e.g. "MarkupElement").
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryOther]
}

// DisplayName returns the human-readable label used in reports.
func (c Category) DisplayName() string {
	if name, ok := categoryDisplayNames[c]; ok {
		return name
	}
	return categoryDisplayNames[CategoryOther]
}

// ParseCategory is the inverse of Category.String. Unknown names map to
// CategoryOther.
func ParseCategory(name string) Category {
	for c, n := range categoryNames {
		if n == name {
			return c
		}
	}
	return CategoryOther
}
