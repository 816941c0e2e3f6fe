package gogit_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/diffpattern"
	"github.com/fwojciec/diffpattern/gitdiff"
	"github.com/fwojciec/diffpattern/gogit"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo is a repository built with go-git for tests.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo}
}

// commit writes files (path -> content, empty content removes) and commits.
func (r *testRepo) commit(msg string, files map[string]string) string {
	r.t.Helper()

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	for name, content := range files {
		path := filepath.Join(r.dir, name)
		if content == "" {
			_, err := wt.Remove(name)
			require.NoError(r.t, err)
			continue
		}
		require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
		_, err := wt.Add(name)
		require.NoError(r.t, err)
	}

	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Unix(1700000000, 0)},
	})
	require.NoError(r.t, err)
	return hash.String()
}

func TestSource_CommitDiff(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("initial", map[string]string{"forms/a.xml": "<Root>\n  <Item id=\"1\"/>\n</Root>\n"})
	head := r.commit("change", map[string]string{"forms/a.xml": "<Root>\n  <Item id=\"2\"/>\n</Root>\n"})

	src, err := gogit.Open(r.dir)
	require.NoError(t, err)

	diff, err := src.CommitDiff(context.Background(), head)

	require.NoError(t, err)
	assert.Contains(t, diff, `-  <Item id="1"/>`)
	assert.Contains(t, diff, `+  <Item id="2"/>`)

	files, err := gitdiff.NewParser().Parse(strings.NewReader(diff))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "forms/a.xml", files[0].Path)
	assert.Equal(t, diffpattern.KindModify, files[0].Kind)
}

func TestSource_CommitDiff_RootCommit(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	root := r.commit("initial", map[string]string{"a.txt": "hello\n"})

	src, err := gogit.Open(r.dir)
	require.NoError(t, err)

	diff, err := src.CommitDiff(context.Background(), root)

	require.NoError(t, err)
	files, err := gitdiff.NewParser().Parse(strings.NewReader(diff))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, diffpattern.KindAdd, files[0].Kind)
	assert.Contains(t, files[0].RawDiff, "+hello")
}

func TestSource_CommitDiff_ResolvesHEAD(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("initial", map[string]string{"a.txt": "one\n"})
	r.commit("second", map[string]string{"a.txt": "two\n"})

	src, err := gogit.Open(r.dir)
	require.NoError(t, err)

	diff, err := src.CommitDiff(context.Background(), "HEAD")

	require.NoError(t, err)
	assert.Contains(t, diff, "-one")
	assert.Contains(t, diff, "+two")
}

func TestSource_RangeDiff(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	base := r.commit("initial", map[string]string{"keep.txt": "keep\n", "gone.txt": "bye\n"})
	r.commit("add", map[string]string{"new.txt": "new\n"})
	head := r.commit("remove", map[string]string{"gone.txt": ""})

	src, err := gogit.Open(r.dir)
	require.NoError(t, err)

	diff, err := src.RangeDiff(context.Background(), base, head)
	require.NoError(t, err)

	files, err := gitdiff.NewParser().Parse(strings.NewReader(diff))
	require.NoError(t, err)

	kinds := make(map[string]diffpattern.ChangeKind)
	for _, f := range files {
		kinds[f.Path] = f.Kind
	}
	assert.Equal(t, map[string]diffpattern.ChangeKind{
		"gone.txt": diffpattern.KindDelete,
		"new.txt":  diffpattern.KindAdd,
	}, kinds)
}

func TestSource_UnknownRevision(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("initial", map[string]string{"a.txt": "a\n"})

	src, err := gogit.Open(r.dir)
	require.NoError(t, err)

	_, err = src.CommitDiff(context.Background(), "0123456789abcdef0123456789abcdef01234567")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOpen_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := gogit.Open(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening repository")
}
