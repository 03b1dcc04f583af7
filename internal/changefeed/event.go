// Package changefeed turns backend product change notifications into a
// single stream of events for the catalog reader.
package changefeed

import "strings"

const (
	SourcePostgres = "postgres"
	SourceKafka    = "kafka"
)

const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// Event says that a product changed. Consumers refetch; the payload is informational.
type Event struct {
	Source    string `json:"source"`
	Op        string `json:"op"`
	ProductID string `json:"id"`
}

// normalizeOp maps kafka event types and pg TG_OP values to one vocabulary.
func normalizeOp(op string) string {
	switch strings.ToLower(op) {
	case "insert", "product_created", "created":
		return OpInsert
	case "update", "product_updated", "updated":
		return OpUpdate
	case "delete", "product_deleted", "deleted":
		return OpDelete
	}
	return strings.ToUpper(op)
}
