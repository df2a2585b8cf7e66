package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"logboard/internal/models"
)

//go:generate mockgen -destination=../mocks/mock_store.go -package=mocks logboard/internal/store LogStore

var ErrNotFound = errors.New("log not found")

// LogStore는 로그 기록 저장소입니다. 기록은 trash 플래그로만 숨겨지고 삭제되지 않습니다.
type LogStore interface {
	Insert(ctx context.Context, entry models.LogEntry) (string, error)
	// List는 숨겨지지 않은 기록을 최신순으로 page(1부터) 단위로 반환하고 전체 개수도 함께 반환합니다.
	List(ctx context.Context, page, perPage int) ([]models.LogEntry, int64, error)
	Trash(ctx context.Context, id string) error
}

// MongoLogStore는 MongoDB logs 컬렉션에 기록을 저장합니다.
type MongoLogStore struct {
	coll *mongo.Collection
}

// Connect는 MongoDB에 연결하고 MongoLogStore를 생성합니다. 반환된 클라이언트는 호출자가 닫아야 합니다.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *MongoLogStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, errors.Wrap(err, "MongoDB 연결 실패")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, errors.Wrap(err, "MongoDB ping 실패")
	}
	return client, NewMongoLogStore(client.Database(dbName)), nil
}

func NewMongoLogStore(db *mongo.Database) *MongoLogStore {
	return &MongoLogStore{coll: db.Collection("logs")}
}

func (s *MongoLogStore) Insert(ctx context.Context, entry models.LogEntry) (string, error) {
	res, err := s.coll.InsertOne(ctx, entry)
	if err != nil {
		return "", errors.Wrap(err, "로그 저장 실패")
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.Errorf("예상치 못한 inserted id 타입: %T", res.InsertedID)
	}
	return id.Hex(), nil
}

func (s *MongoLogStore) List(ctx context.Context, page, perPage int) ([]models.LogEntry, int64, error) {
	filter := bson.M{"trash": false}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "로그 개수 조회 실패")
	}

	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "url": 1, "created_at": 1, "meta_info": 1}).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "로그 목록 조회 실패")
	}
	entries := []models.LogEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, errors.Wrap(err, "로그 목록 디코딩 실패")
	}
	return entries, total, nil
}

func (s *MongoLogStore) Trash(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "trash": false},
		bson.M{"$set": bson.M{"trash": true}},
	)
	if err != nil {
		return errors.Wrap(err, "로그 숨김 처리 실패")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
