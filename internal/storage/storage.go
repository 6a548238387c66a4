package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gembot/backend/internal/models"
)

// Storage is the persistence gateway for the three document collections and
// the transient per-chat pending-action slot. The collections share chat_id
// as a correlation key but are independent; nothing joins them.
type Storage interface {
	UserByChatID(ctx context.Context, chatID int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SetPhoneNumber(ctx context.Context, chatID int64, phone string) error

	SaveChatTurn(ctx context.Context, turn *models.ChatTurn) error
	ChatTurnsByChatID(ctx context.Context, chatID int64) ([]models.ChatTurn, error)

	SaveFileAnalysis(ctx context.Context, record *models.FileAnalysis) error
	FileAnalysesByChatID(ctx context.Context, chatID int64) ([]models.FileAnalysis, error)

	SetPendingAction(ctx context.Context, chatID int64, action models.PendingAction) error
	TakePendingAction(ctx context.Context, chatID int64) (models.PendingAction, error)
}

type Service struct {
	DB    *mongo.Database
	Redis *redis.Client
}

// NewService Constructor
func NewService(db *mongo.Database, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
	}
}

func (s *Service) users() *mongo.Collection        { return s.DB.Collection("users") }
func (s *Service) chats() *mongo.Collection        { return s.DB.Collection("chats") }
func (s *Service) fileAnalysis() *mongo.Collection { return s.DB.Collection("file_analysis") }

// EnsureIndexes creates the unique chat_id index on the users collection.
// Called once at startup; the other collections are append-only and unindexed.
func (s *Service) EnsureIndexes(ctx context.Context) error {
	_, err := s.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "chat_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users chat_id index: %w", err)
	}
	return nil
}

// UserByChatID returns the user document for a chat, or nil without an error
// when the chat has never registered.
func (s *Service) UserByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"chat_id": chatID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.users().InsertOne(ctx, user)
	return err
}

// SetPhoneNumber records the shared phone number and moves the user to the
// registered state in a single update.
func (s *Service) SetPhoneNumber(ctx context.Context, chatID int64, phone string) error {
	_, err := s.users().UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{"$set": bson.M{
			"phone_number":       phone,
			"registration_state": models.RegistrationRegistered,
		}},
	)
	return err
}

func (s *Service) SaveChatTurn(ctx context.Context, turn *models.ChatTurn) error {
	_, err := s.chats().InsertOne(ctx, turn)
	return err
}

func (s *Service) ChatTurnsByChatID(ctx context.Context, chatID int64) ([]models.ChatTurn, error) {
	cursor, err := s.chats().Find(ctx, bson.M{"chat_id": chatID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var turns []models.ChatTurn
	if err := cursor.All(ctx, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (s *Service) SaveFileAnalysis(ctx context.Context, record *models.FileAnalysis) error {
	_, err := s.fileAnalysis().InsertOne(ctx, record)
	return err
}

func (s *Service) FileAnalysesByChatID(ctx context.Context, chatID int64) ([]models.FileAnalysis, error) {
	cursor, err := s.fileAnalysis().Find(ctx, bson.M{"chat_id": chatID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var records []models.FileAnalysis
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func pendingActionKey(chatID int64) string {
	return fmt.Sprintf("pending_action:%d", chatID)
}

// SetPendingAction stores the slot in Redis. Setting PendingNone clears it.
func (s *Service) SetPendingAction(ctx context.Context, chatID int64, action models.PendingAction) error {
	key := pendingActionKey(chatID)
	if action == models.PendingNone {
		return s.Redis.Del(ctx, key).Err()
	}
	return s.Redis.Set(ctx, key, string(action), 0).Err()
}

// TakePendingAction reads and clears the slot atomically, so a queued query
// is consumed by exactly one text message.
func (s *Service) TakePendingAction(ctx context.Context, chatID int64) (models.PendingAction, error) {
	value, err := s.Redis.GetDel(ctx, pendingActionKey(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return models.PendingNone, nil
	}
	if err != nil {
		return models.PendingNone, err
	}
	return models.PendingAction(value), nil
}
