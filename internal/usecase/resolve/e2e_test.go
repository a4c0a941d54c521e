package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/entmatch/internal/db/bleve"
	"github.com/kailas-cloud/entmatch/internal/domain"
	"github.com/kailas-cloud/entmatch/internal/domain/params"
	domrec "github.com/kailas-cloud/entmatch/internal/domain/record"
	recrepo "github.com/kailas-cloud/entmatch/internal/repository/record"
	"github.com/kailas-cloud/entmatch/internal/usecase/match"
)

func newCatalogService(t *testing.T) *Service {
	t.Helper()
	schema := domain.DefaultSchema()

	store, err := bleve.NewStore(bleve.Config{MatchField: schema.MatchField})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(store.Close)

	repo := recrepo.New(store)
	err = repo.Put(context.Background(), domrec.New("1", map[string][]string{
		"variant":           {"iphone"},
		"token_count":       {"1"},
		"search_def_id":     {"1"},
		"name":              {"Apple iPhone"},
		domrec.VersionField: {"42"},
	}))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	engine := match.New(repo, schema.IDField, nil, nil)
	return New(engine, schema, 0, nil)
}

func TestEndToEnd_ExactToken(t *testing.T) {
	svc := newCatalogService(t)

	res, err := svc.Resolve(context.Background(), params.Map{
		"q.id":          "1",
		"q.0.t.0.text":  "iphone",
		"q.0.t.0.fuzzy": "false",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Matched {
		t.Fatal("expected match")
	}
	if res.Fields["id"] != "1" {
		t.Errorf("id = %q, want 1", res.Fields["id"])
	}
	if res.Fields["name"] != "Apple iPhone" {
		t.Errorf("name = %q", res.Fields["name"])
	}
	if _, ok := res.Fields[domrec.VersionField]; ok {
		t.Error("version field must not be returned")
	}
}

func TestEndToEnd_FuzzyToken(t *testing.T) {
	svc := newCatalogService(t)

	res, err := svc.Resolve(context.Background(), params.Map{
		"q.id":           "1",
		"q.0.t.0.text":   "ipone",
		"q.0.t.0.fuzzy":  "true",
		"q.0.t.0.var":    "1",
		"q.0.t.0.prefix": "2",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Matched || res.Fields["id"] != "1" {
		t.Errorf("expected record 1, got %+v", res)
	}
}

func TestEndToEnd_OtherDefinitionNoMatch(t *testing.T) {
	svc := newCatalogService(t)

	for _, text := range []string{"iphone", "anything"} {
		res, err := svc.Resolve(context.Background(), params.Map{
			"q.id":          "2",
			"q.0.t.0.text":  text,
			"q.0.t.0.fuzzy": "false",
		})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if res.Matched {
			t.Errorf("text %q: expected no match, got %+v", text, res)
		}
	}
}

func TestEndToEnd_MissingSearchID(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.Resolve(context.Background(), params.Map{
		"q.0.t.0.text":  "iphone",
		"q.0.t.0.fuzzy": "false",
	})
	if !errors.Is(err, domain.ErrMissingSearchID) {
		t.Fatalf("expected ErrMissingSearchID, got %v", err)
	}
}

func TestEndToEnd_UnsupportedFuzzinessIsNoMatch(t *testing.T) {
	svc := newCatalogService(t)

	res, err := svc.Resolve(context.Background(), params.Map{
		"q.id":           "1",
		"q.0.t.0.text":   "iphone",
		"q.0.t.0.fuzzy":  "true",
		"q.0.t.0.var":    "3",
		"q.0.t.0.prefix": "0",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Matched {
		t.Error("over-wide fuzziness should degrade to no match")
	}
}
