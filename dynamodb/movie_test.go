package dynamodb

import (
	"context"
	"fmt"
	"movieshelf/movie"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMovies_RestoresCatalogOrder(t *testing.T) {
	items := []movieItem{
		{Seq: 2, Title: "괴물", Genre: "SF", Year: 2006},
		{Seq: 0, Title: "기생충", Genre: "드라마", Year: 2019},
		{Seq: 1, Title: "올드보이", Genre: "액션", Year: 2003},
	}

	movies := toMovies(items)

	require.Len(t, movies, 3)
	assert.Equal(t, []string{"기생충", "올드보이", "괴물"}, []string{movies[0].Title, movies[1].Title, movies[2].Title})
}

func TestMovieItem_RoundTripsThroughAttributeValues(t *testing.T) {
	m := movie.Movie{Title: "기생충", Genre: "드라마", Year: 2019, Director: "봉준호", Actors: "송강호, 최우식"}

	av, err := attributevalue.MarshalMap(toItem(7, m))
	require.NoError(t, err)
	assert.Contains(t, av, "seq")

	var item movieItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &item))
	assert.Equal(t, 7, item.Seq)
	assert.Equal(t, []movie.Movie{m}, toMovies([]movieItem{item}))
}

func TestMovieRepository_RequiresTable(t *testing.T) {
	repo := NewMovieRepository(nil, " ")

	_, err := repo.LoadMovies(context.Background())
	assert.True(t, movie.IsLoadError(err, movie.LoadIOFailure))

	assert.Error(t, repo.PutMovies(context.Background(), []movie.Movie{{Title: "x"}}))
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(context.Background(), Options{})
	assert.EqualError(t, err, "dynamodb: region is required")

	_, err = NewClient(context.Background(), Options{Region: "ap-northeast-2", AccessKey: "only-access"})
	assert.EqualError(t, err, "dynamodb: access key and secret key must be set together")
}

func TestMoviesTableInput(t *testing.T) {
	in := moviesTableInput("movies")

	assert.Equal(t, "movies", *in.TableName)
	require.Len(t, in.KeySchema, 1)
	assert.Equal(t, "seq", *in.KeySchema[0].AttributeName)
	assert.Equal(t, types.KeyTypeHash, in.KeySchema[0].KeyType)
	assert.Equal(t, types.ScalarAttributeTypeN, in.AttributeDefinitions[0].AttributeType)
	assert.Equal(t, types.BillingModePayPerRequest, in.BillingMode)
}

func TestEnsureMoviesTable_RequiresTable(t *testing.T) {
	assert.EqualError(t, EnsureMoviesTable(context.Background(), nil, ""), "dynamodb: table name is required")
}

func TestStaleScanInput(t *testing.T) {
	in := staleScanInput("movies", 3)

	assert.Equal(t, "movies", *in.TableName)
	assert.Equal(t, "#seq", *in.ProjectionExpression)
	assert.Equal(t, "#seq >= :n", *in.FilterExpression)
	assert.Equal(t, map[string]string{"#seq": "seq"}, in.ExpressionAttributeNames)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, in.ExpressionAttributeValues[":n"])
}

func TestDeleteRequests(t *testing.T) {
	requests := deleteRequests([]int{3, 9})

	require.Len(t, requests, 2)
	for i, seq := range []string{"3", "9"} {
		assert.Nil(t, requests[i].PutRequest)
		require.NotNil(t, requests[i].DeleteRequest)
		assert.Equal(t, map[string]types.AttributeValue{
			"seq": &types.AttributeValueMemberN{Value: seq},
		}, requests[i].DeleteRequest.Key)
	}
	assert.Empty(t, deleteRequests(nil))
}

func TestMovieRepository_PutMovies(t *testing.T) {
	catalog := make([]movie.Movie, 30)
	for i := range catalog {
		catalog[i] = movie.Movie{Title: fmt.Sprintf("movie %02d", i), Genre: "드라마", Year: 2000 + i}
	}

	t.Run("writes the catalog in order across batches", func(t *testing.T) {
		client, table := newFakeClient(t)
		repo := NewMovieRepository(client, "movies")

		require.NoError(t, repo.PutMovies(context.Background(), catalog))

		movies, err := repo.LoadMovies(context.Background())
		require.NoError(t, err)
		assert.Equal(t, catalog, movies)
		assert.Equal(t, 30, table.len())
	})

	t.Run("removes movies left over from a longer catalog", func(t *testing.T) {
		client, table := newFakeClient(t)
		repo := NewMovieRepository(client, "movies")
		require.NoError(t, repo.PutMovies(context.Background(), catalog))

		shorter := []movie.Movie{
			{Title: "기생충", Genre: "드라마", Year: 2019, Director: "봉준호", Actors: "송강호"},
			{Title: "올드보이", Genre: "스릴러", Year: 2003, Director: "박찬욱", Actors: "최민식"},
			{Title: "괴물", Genre: "SF", Year: 2006, Director: "봉준호", Actors: "송강호"},
		}
		require.NoError(t, repo.PutMovies(context.Background(), shorter))

		movies, err := repo.LoadMovies(context.Background())
		require.NoError(t, err)
		assert.Equal(t, shorter, movies)
		assert.Equal(t, 3, table.len())
	})

	t.Run("empties the table for an empty catalog", func(t *testing.T) {
		client, table := newFakeClient(t)
		repo := NewMovieRepository(client, "movies")
		require.NoError(t, repo.PutMovies(context.Background(), catalog[:5]))

		require.NoError(t, repo.PutMovies(context.Background(), nil))

		movies, err := repo.LoadMovies(context.Background())
		require.NoError(t, err)
		assert.Empty(t, movies)
		assert.Zero(t, table.len())
	})
}
