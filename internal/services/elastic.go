package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

//
// --- INDEXING ---
//

// IndexProduct pushes a product document into the "products" index.
// Called asynchronously from the product write paths.
func IndexProduct(p models.Product) {
	indexDocument("products", p.ID.String(), p, p.Name)
}

// IndexBlogPost pushes a blog post into the "content" index.
func IndexBlogPost(post models.BlogPost) {
	indexDocument("content", post.ID.String(), post, post.Title)
}

// IndexRecipe pushes a recipe into the "content" index.
func IndexRecipe(recipe models.Recipe) {
	indexDocument("content", recipe.ID.String(), recipe, recipe.Title)
}

func indexDocument(index, id string, doc interface{}, label string) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic not initialized, cannot index:", label)
		return
	}

	data, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic request failed:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic returned an error for %s: %s", label, res.String())
	} else {
		log.Printf("✅ Indexed in Elasticsearch (%s): %s", index, label)
	}
}

// DeleteFromIndex removes a document after the resource is deleted.
func DeleteFromIndex(index, id string) {
	if database.Elastic == nil {
		return
	}
	req := esapi.DeleteRequest{Index: index, DocumentID: id}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic delete failed:", err)
		return
	}
	res.Body.Close()
}

//
// --- SEARCH ---
//

// SearchProducts queries the products index by name, description or tags.
func SearchProducts(query string) ([]map[string]interface{}, error) {
	return search("products", query, []string{"name", "description", "tags"})
}

// SearchContent queries blog posts and recipes by title, excerpt or content.
func SearchContent(query string) ([]map[string]interface{}, error) {
	return search("content", query, []string{"title", "excerpt", "description", "content", "ingredients"})
}

func search(index, query string, fields []string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("elasticsearch client not initialized")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": fields,
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("query encoding failed: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("elastic request failed: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch error: %+v", e)
		return nil, errors.New("index not found or empty")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("response decoding failed: %v", err)
	}

	hitsData, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid Elastic response (no hits)")
	}
	hitsArray, ok := hitsData["hits"].([]interface{})
	if !ok {
		return nil, errors.New("no results found")
	}

	results := make([]map[string]interface{}, 0, len(hitsArray))
	for _, hit := range hitsArray {
		hitMap, _ := hit.(map[string]interface{})
		if source, ok := hitMap["_source"].(map[string]interface{}); ok {
			results = append(results, source)
		}
	}

	return results, nil
}
