package flatfile_test

import (
	"context"
	"io/fs"
	"movieshelf/errs"
	"movieshelf/flatfile"
	"movieshelf/movie"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSource_LoadMovies(t *testing.T) {
	t.Run("loads well-formed lines and skips the rest", func(t *testing.T) {
		path := writeCatalog(t, "기생충,드라마,2019,봉준호,송강호\n올드보이,액션,2003,박찬욱\n")

		movies, err := flatfile.NewSource(path).LoadMovies(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []movie.Movie{
			{Title: "기생충", Genre: "드라마", Year: 2019, Director: "봉준호", Actors: "송강호"},
		}, movies)
	})

	t.Run("fails with malformed year", func(t *testing.T) {
		path := writeCatalog(t, "기생충,드라마,abc,봉준호,송강호\n")

		movies, err := flatfile.NewSource(path).LoadMovies(context.Background())

		assert.Empty(t, movies)
		assert.True(t, movie.IsLoadError(err, movie.LoadMalformedYear))
	})

	t.Run("fails with not found for a missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.txt")

		_, err := flatfile.NewSource(path).LoadMovies(context.Background())

		assert.True(t, movie.IsLoadError(err, movie.LoadNotFound))
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	})

	t.Run("fails with io failure for a directory", func(t *testing.T) {
		_, err := flatfile.NewSource(t.TempDir()).LoadMovies(context.Background())

		assert.True(t, movie.IsLoadError(err, movie.LoadIOFailure))
	})

	t.Run("loads an empty file as an empty catalog", func(t *testing.T) {
		path := writeCatalog(t, "")

		movies, err := flatfile.NewSource(path).LoadMovies(context.Background())

		require.NoError(t, err)
		assert.Empty(t, movies)
	})
}
