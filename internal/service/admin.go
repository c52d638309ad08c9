package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/naimekattor/user-management-app/internal/apperr"
	"github.com/naimekattor/user-management-app/internal/core/cache"
	"github.com/naimekattor/user-management-app/internal/domain"
)

const userListCacheKey = "admin:users"

// Bulk action verbs accepted by ApplyBulkAction.
const (
	ActionBlock   = "block"
	ActionUnblock = "unblock"
	ActionDelete  = "delete"
)

// UserRow is one line of the admin dashboard table.
type UserRow struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"lastLogin"`
	IsBlocked bool       `json:"isBlocked"`
}

// AdminService serves the dashboard: the full user listing and the bulk
// block/unblock/delete actions.
type AdminService struct {
	repo    domain.UserRepository
	cache   *cache.Cache // nil disables listing cache
	listTTL time.Duration
	log     *zap.Logger
}

func NewAdminService(repo domain.UserRepository, c *cache.Cache, listTTL time.Duration, log *zap.Logger) *AdminService {
	return &AdminService{repo: repo, cache: c, listTTL: listTTL, log: log}
}

// ListUsers returns every user ordered by last login descending, users who
// never logged in last. No pagination: the dashboard renders the full set.
func (s *AdminService) ListUsers(ctx context.Context) ([]UserRow, error) {
	if s.cache == nil {
		return s.loadUsers(ctx)
	}
	rows, err := cache.GetOrLoadJSON(s.cache, ctx, userListCacheKey, s.listTTL, s.loadUsers)
	if err != nil {
		// redis being down must not take the dashboard with it
		s.log.Warn("user list cache bypass", zap.Error(err))
		return s.loadUsers(ctx)
	}
	return rows, nil
}

func (s *AdminService) loadUsers(ctx context.Context) ([]UserRow, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch users", err)
	}
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			LastLogin: u.LastLogin,
			IsBlocked: u.IsBlocked,
		})
	}
	return rows, nil
}

// ApplyBulkAction applies one of block/unblock/delete to the given ids.
// Unmatched ids are ignored, not an error; the result is a single
// acknowledgment string with no per-id breakdown.
func (s *AdminService) ApplyBulkAction(ctx context.Context, action string, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", apperr.BadRequest("No user IDs provided")
	}
	for _, id := range ids {
		if id == "" {
			return "", apperr.BadRequest("No user IDs provided")
		}
	}

	var (
		msg string
		err error
	)
	switch action {
	case ActionBlock:
		msg, err = "Users updated", s.repo.SetBlocked(ctx, ids, true)
	case ActionUnblock:
		msg, err = "Users updated", s.repo.SetBlocked(ctx, ids, false)
	case ActionDelete:
		msg, err = "Users deleted", s.repo.DeleteByIDs(ctx, ids)
	default:
		return "", apperr.BadRequest("Invalid action")
	}
	if err != nil {
		return "", apperr.Internal("Error updating users", err)
	}

	if s.cache != nil {
		if ierr := s.cache.Invalidate(ctx, userListCacheKey); ierr != nil {
			// the listing stays stale until the TTL runs out
			s.log.Warn("user list cache invalidate failed", zap.Error(ierr))
		}
	}
	s.log.Info("bulk action applied",
		zap.String("action", action),
		zap.Int("ids", len(ids)),
	)
	return msg, nil
}
