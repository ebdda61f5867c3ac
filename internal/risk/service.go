package risk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrInvalidForm = errors.New("invalid risk form")

type Service struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
	log      *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
		now:      time.Now,
		log:      log.Named("risk"),
	}
}

// Validate checks the form and reports every failing field.
func (s *Service) Validate(f Form) error {
	err := s.validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(fields, ", "))
}

// Submit validates, scores and stores the form for the user.
func (s *Service) Submit(ctx context.Context, userID string, f Form) (Record, Assessment, error) {
	if strings.TrimSpace(userID) == "" {
		return Record{}, Assessment{}, fmt.Errorf("%w: userId is required", ErrInvalidForm)
	}
	if err := s.Validate(f); err != nil {
		return Record{}, Assessment{}, err
	}

	a := Assess(f)
	rec := Record{
		UserID:    userID,
		RiskLevel: a.Level,
		Score:     a.Score,
		FormData:  f,
		Timestamp: s.now().UTC(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return Record{}, Assessment{}, fmt.Errorf("save assessment: %w", err)
	}

	s.log.Info("risk assessed", zap.String("userId", userID), zap.String("level", string(a.Level)), zap.Int("score", a.Score))
	return rec, a, nil
}

func (s *Service) Latest(ctx context.Context, userID string) (Record, error) {
	return s.store.Latest(ctx, userID)
}
