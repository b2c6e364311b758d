package dynamodb

import (
	"context"
	"fmt"
	"movieshelf/movie"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// batchWriteLimit is the DynamoDB BatchWriteItem maximum.
	batchWriteLimit    = 25
	batchWriteAttempts = 5
)

// movieItem is keyed by seq, the position of the movie in the catalog.
type movieItem struct {
	Seq      int    `dynamodbav:"seq"`
	Title    string `dynamodbav:"title"`
	Genre    string `dynamodbav:"genre"`
	Year     int    `dynamodbav:"year"`
	Director string `dynamodbav:"director"`
	Actors   string `dynamodbav:"actors"`
}

type MovieRepository struct {
	client *dynamodb.Client
	table  string
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
	}
}

func (r *MovieRepository) LoadMovies(ctx context.Context) ([]movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, &movie.LoadError{Kind: movie.LoadIOFailure, Source: r.source(), Err: err}
	}

	var items []movieItem
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: &r.table,
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &movie.LoadError{Kind: movie.LoadIOFailure, Source: r.source(), Err: err}
		}

		var page []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, &movie.LoadError{Kind: movie.LoadIOFailure, Source: r.source(), Err: err}
		}
		items = append(items, page...)
	}

	return toMovies(items), nil
}

// PutMovies writes movies with their catalog position and deletes the items
// of a previous, longer catalog, so the table holds exactly movies.
func (r *MovieRepository) PutMovies(ctx context.Context, movies []movie.Movie) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	requests := make([]types.WriteRequest, 0, len(movies))
	for i, m := range movies {
		av, err := attributevalue.MarshalMap(toItem(i, m))
		if err != nil {
			return fmt.Errorf("dynamodb: marshal movie: %w", err)
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}
	if err := r.writeAll(ctx, requests); err != nil {
		return err
	}

	stale, err := r.staleSeqs(ctx, len(movies))
	if err != nil {
		return err
	}
	return r.writeAll(ctx, deleteRequests(stale))
}

// staleSeqs returns the seq of every item at or beyond n.
func (r *MovieRepository) staleSeqs(ctx context.Context, n int) ([]int, error) {
	var seqs []int
	paginator := dynamodb.NewScanPaginator(r.client, staleScanInput(r.table, n))
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan stale movies: %w", err)
		}

		var page []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal stale movies: %w", err)
		}
		for _, item := range page {
			seqs = append(seqs, item.Seq)
		}
	}
	return seqs, nil
}

func (r *MovieRepository) writeAll(ctx context.Context, requests []types.WriteRequest) error {
	for start := 0; start < len(requests); start += batchWriteLimit {
		end := start + batchWriteLimit
		if end > len(requests) {
			end = len(requests)
		}
		if err := r.batchWrite(ctx, requests[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *MovieRepository) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{r.table: requests}
	for attempt := 0; len(pending[r.table]) > 0; attempt++ {
		if attempt == batchWriteAttempts {
			return fmt.Errorf("dynamodb: put movies: %d items unprocessed", len(pending[r.table]))
		}
		out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return fmt.Errorf("dynamodb: put movies: %w", err)
		}
		pending = out.UnprocessedItems
	}
	return nil
}

func (r *MovieRepository) source() string {
	return "dynamodb:" + r.table
}

func staleScanInput(table string, n int) *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		TableName:                aws.String(table),
		ProjectionExpression:     aws.String("#seq"),
		FilterExpression:         aws.String("#seq >= :n"),
		ExpressionAttributeNames: map[string]string{"#seq": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":n": &types.AttributeValueMemberN{Value: strconv.Itoa(n)},
		},
	}
}

func deleteRequests(seqs []int) []types.WriteRequest {
	requests := make([]types.WriteRequest, len(seqs))
	for i, seq := range seqs {
		requests[i] = types.WriteRequest{DeleteRequest: &types.DeleteRequest{
			Key: map[string]types.AttributeValue{
				"seq": &types.AttributeValueMemberN{Value: strconv.Itoa(seq)},
			},
		}}
	}
	return requests
}

func toItem(seq int, m movie.Movie) movieItem {
	return movieItem{
		Seq:      seq,
		Title:    m.Title,
		Genre:    m.Genre,
		Year:     m.Year,
		Director: m.Director,
		Actors:   m.Actors,
	}
}

// toMovies restores catalog order from the unordered scan result.
func toMovies(items []movieItem) []movie.Movie {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Seq < items[j].Seq
	})

	movies := make([]movie.Movie, len(items))
	for i, item := range items {
		movies[i] = movie.Movie{
			Title:    item.Title,
			Genre:    item.Genre,
			Year:     item.Year,
			Director: item.Director,
			Actors:   item.Actors,
		}
	}
	return movies
}
