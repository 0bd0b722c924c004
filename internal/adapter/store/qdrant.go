package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"coderag/internal/domain"
	"coderag/internal/port"
)

// Narrow views of the generated Qdrant clients, for testability.
type pointsAPI interface {
	Upsert(ctx context.Context, in *pb.UpsertPoints, opts ...grpc.CallOption) (*pb.PointsOperationResponse, error)
	Search(ctx context.Context, in *pb.SearchPoints, opts ...grpc.CallOption) (*pb.SearchResponse, error)
	Count(ctx context.Context, in *pb.CountPoints, opts ...grpc.CallOption) (*pb.CountResponse, error)
}

type collectionsAPI interface {
	List(ctx context.Context, in *pb.ListCollectionsRequest, opts ...grpc.CallOption) (*pb.ListCollectionsResponse, error)
	Create(ctx context.Context, in *pb.CreateCollection, opts ...grpc.CallOption) (*pb.CollectionOperationResponse, error)
}

type healthAPI interface {
	HealthCheck(ctx context.Context, in *pb.HealthCheckRequest, opts ...grpc.CallOption) (*pb.HealthCheckReply, error)
}

// QdrantStore is the sole owner of all Qdrant operations. It implements
// port.VectorStore over a single collection.
type QdrantStore struct {
	conn        *grpc.ClientConn
	points      pointsAPI
	collections collectionsAPI
	health      healthAPI
	collection  string
}

// New creates a QdrantStore connected to Qdrant at the given gRPC address.
func New(addr string, collection string) (*QdrantStore, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("store: dial qdrant %s: %w", addr, err)
	}
	return &QdrantStore{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		health:      pb.NewQdrantClient(conn),
		collection:  collection,
	}, nil
}

// NewWithClients builds a store over pre-constructed clients. Used by tests.
func NewWithClients(points pointsAPI, collections collectionsAPI, health healthAPI, collection string) *QdrantStore {
	return &QdrantStore{
		points:      points,
		collections: collections,
		health:      health,
		collection:  collection,
	}
}

// Close closes the underlying gRPC connection.
func (s *QdrantStore) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// WaitReady polls the health endpoint once per second until it answers or
// ctx expires. Callers bound the wait with a deadline on ctx.
func (s *QdrantStore) WaitReady(ctx context.Context) error {
	probe := func() error {
		_, err := s.health.HealthCheck(ctx, &pb.HealthCheckRequest{})
		return err
	}
	b := backoff.WithContext(backoff.NewConstantBackOff(time.Second), ctx)
	if err := backoff.Retry(probe, b); err != nil {
		return fmt.Errorf("%w: %v", port.ErrStoreNotReady, err)
	}
	return nil
}

// EnsureCollection creates the collection (cosine distance) if it doesn't exist.
func (s *QdrantStore) EnsureCollection(ctx context.Context, dims int) error {
	list, err := s.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("store: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == s.collection {
			return nil
		}
	}

	d := uint64(dims)
	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     d,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("store: create collection %s: %w", s.collection, err)
	}
	return nil
}

// Count returns the exact number of points in the collection.
func (s *QdrantStore) Count(ctx context.Context) (int, error) {
	exact := true
	resp, err := s.points.Count(ctx, &pb.CountPoints{
		CollectionName: s.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return int(resp.GetResult().GetCount()), nil
}

// Upsert writes records into Qdrant in a single batch. Point IDs are
// derived deterministically from the snippet id (Qdrant only accepts UUID
// or integer ids); the string id rides in the payload.
func (s *QdrantStore) Upsert(ctx context.Context, records []domain.StoredRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, len(records))
	for i, r := range records {
		points[i] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: PointID(r.ID)},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: r.Vector},
				},
			},
			Payload: map[string]*pb.Value{
				"snippet_id": stringValue(r.ID),
				"title":      stringValue(r.Title),
				"content":    stringValue(r.Content),
			},
		}
	}

	wait := true
	_, err := s.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("store: upsert %d points: %w", len(records), err)
	}
	return nil
}

// Query performs k-NN similarity search and maps each hit to a typed
// StoreHit at the boundary. Qdrant reports cosine similarity; the hit
// carries cosine distance (1 - similarity) so callers see one convention.
func (s *QdrantStore) Query(ctx context.Context, vector []float32, limit int) ([]domain.StoreHit, error) {
	resp, err := s.points.Search(ctx, &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         vector,
		Limit:          uint64(limit),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}

	hits := make([]domain.StoreHit, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		hit := domain.StoreHit{
			ID:       r.GetId().GetUuid(),
			Distance: 1 - float64(r.GetScore()),
		}
		for k, val := range r.GetPayload() {
			switch k {
			case "snippet_id":
				if id := val.GetStringValue(); id != "" {
					hit.ID = id
				}
			case "title":
				hit.Title = val.GetStringValue()
			case "content":
				hit.Content = val.GetStringValue()
			}
		}
		hits[i] = hit
	}
	return hits, nil
}

// PointID maps a catalog snippet id to its deterministic Qdrant point UUID.
func PointID(snippetID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(snippetID)).String()
}

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}
