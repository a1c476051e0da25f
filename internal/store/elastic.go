// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	"github.com/olivere/elastic"
	"github.com/pkg/errors"

	"docdb/cli/internal/config"
	"docdb/cli/internal/dsn"
	"docdb/cli/internal/result"
)

// docType is the mapping type used by Elasticsearch 6 single-type indices.
const docType = "_doc"

// defaultElasticUser is used when only a key is supplied.
const defaultElasticUser = "elastic"

// Elastic is a Store backed by an Elasticsearch cluster.
type Elastic struct {
	client   *elastic.Client
	pageSize int
}

func openElastic(ctx context.Context, conn config.Connection, pageSize int) (*Elastic, error) {
	info, err := dsn.Parse(conn.Host)
	if err != nil {
		return nil, err
	}
	base := elasticURL(info)

	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(base),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	}
	user, pass := info.User, info.Password
	if conn.Key != "" {
		pass = conn.Key
		if user == "" {
			user = defaultElasticUser
		}
	}
	if user != "" {
		opts = append(opts, elastic.SetBasicAuth(user, pass))
	}

	client, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create elasticsearch client")
	}
	if _, _, err := client.Ping(base).Do(ctx); err != nil {
		client.Stop()
		return nil, errors.Wrap(err, "ping elasticsearch")
	}
	return &Elastic{client: client, pageSize: pageSize}, nil
}

// elasticURL rebuilds the cluster URL without credentials or path.
func elasticURL(info *dsn.Info) string {
	u := url.URL{Scheme: info.Scheme, Host: info.Host}
	if info.Port != "" {
		u.Host = info.Host + ":" + info.Port
	}
	return u.String()
}

func (e *Elastic) Kind() dsn.Kind { return dsn.KindElasticsearch }

// Collections lists index names, hiding system indices.
func (e *Elastic) Collections(ctx context.Context) ([]string, error) {
	settings, err := e.client.IndexGetSettings().Index("_all").Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list indices")
	}
	out := make([]string, 0, len(settings))
	for n := range settings {
		if !strings.HasPrefix(n, ".") {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Query searches collection, or every index when collection is empty. Text
// starting with '{' is sent as a raw JSON query, anything else as a
// query-string expression.
func (e *Elastic) Query(ctx context.Context, collection, text string) (result.Set, error) {
	svc := e.client.Search().Size(e.pageSize)
	if collection != "" {
		svc = svc.Index(collection)
	}
	svc = svc.Query(searchQuery(text))

	res, err := svc.Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "search %s", displayIndex(collection))
	}

	if res.Hits == nil {
		return result.Set{}, nil
	}
	set := make(result.Set, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		rec, err := hitRecord(hit.Id, hit.Source)
		if err != nil {
			return nil, errors.Wrapf(err, "decode document %s", hit.Id)
		}
		set = append(set, rec)
	}
	return set, nil
}

// Get fetches one document by id.
func (e *Elastic) Get(ctx context.Context, collection, id string) (result.Set, error) {
	if collection == "" {
		return nil, errNoCollection
	}
	res, err := e.client.Get().Index(collection).Type(docType).Id(id).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil, errors.Errorf("document %s not found in %s", id, collection)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s/%s", collection, id)
	}
	if !res.Found {
		return nil, errors.Errorf("document %s not found in %s", id, collection)
	}
	rec, err := hitRecord(res.Id, res.Source)
	if err != nil {
		return nil, errors.Wrapf(err, "decode document %s", res.Id)
	}
	return result.Set{rec}, nil
}

func (e *Elastic) Close() error {
	e.client.Stop()
	return nil
}

func searchQuery(text string) elastic.Query {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "{") {
		return elastic.NewRawStringQuery(text)
	}
	return elastic.NewQueryStringQuery(text)
}

// hitRecord turns a document source into a record whose first field is _id.
func hitRecord(id string, source *json.RawMessage) (result.Record, error) {
	rec := result.Record{{Name: "_id", Value: id}}
	if source == nil || len(*source) == 0 {
		return rec, nil
	}
	body, err := result.DecodeRecord(*source)
	if err != nil {
		return nil, err
	}
	return append(rec, body...), nil
}

func displayIndex(name string) string {
	if name == "" {
		return "all indices"
	}
	return name
}
