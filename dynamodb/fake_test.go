package dynamodb

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type attributeMap map[string]map[string]interface{}

// fakeTable serves BatchWriteItem and Scan for a single table keyed by seq.
// A scan carrying ":n" returns only the seq of items at or beyond n.
type fakeTable struct {
	mu    sync.Mutex
	items map[int]attributeMap
}

func newFakeClient(t *testing.T) (*dynamodb.Client, *fakeTable) {
	t.Helper()
	table := &fakeTable{items: make(map[int]attributeMap)}
	srv := httptest.NewServer(table)
	t.Cleanup(srv.Close)

	client := dynamodb.New(dynamodb.Options{
		Region:                          "ap-northeast-2",
		BaseEndpoint:                    aws.String(srv.URL),
		Credentials:                     credentials.NewStaticCredentialsProvider("local", "local", ""),
		DisableValidateResponseChecksum: true,
		RetryMaxAttempts:                1,
	})
	return client, table
}

func (f *fakeTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var resp interface{}
	switch target := r.Header.Get("X-Amz-Target"); {
	case strings.HasSuffix(target, ".BatchWriteItem"):
		var in struct {
			RequestItems map[string][]struct {
				PutRequest    *struct{ Item attributeMap }
				DeleteRequest *struct{ Key attributeMap }
			}
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, requests := range in.RequestItems {
			for _, req := range requests {
				switch {
				case req.PutRequest != nil:
					f.items[seqOf(req.PutRequest.Item)] = req.PutRequest.Item
				case req.DeleteRequest != nil:
					delete(f.items, seqOf(req.DeleteRequest.Key))
				}
			}
		}
		resp = map[string]interface{}{"UnprocessedItems": map[string]interface{}{}}
	case strings.HasSuffix(target, ".Scan"):
		var in struct {
			ExpressionAttributeValues attributeMap
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		items := f.scan(in.ExpressionAttributeValues)
		resp = map[string]interface{}{"Items": items, "Count": len(items), "ScannedCount": len(f.items)}
	default:
		http.Error(w, "unsupported operation "+target, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/x-amz-json-1.0")
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *fakeTable) scan(values attributeMap) []attributeMap {
	seqs := make([]int, 0, len(f.items))
	for seq := range f.items {
		seqs = append(seqs, seq)
	}
	sort.Ints(seqs)

	items := []attributeMap{}
	for _, seq := range seqs {
		if n, ok := values[":n"]; ok {
			from, _ := strconv.Atoi(n["N"].(string))
			if seq < from {
				continue
			}
			items = append(items, attributeMap{"seq": f.items[seq]["seq"]})
			continue
		}
		items = append(items, f.items[seq])
	}
	return items
}

func (f *fakeTable) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func seqOf(item attributeMap) int {
	n, _ := item["seq"]["N"].(string)
	seq, _ := strconv.Atoi(n)
	return seq
}
