package risk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validForm() Form {
	return Form{
		Salary:         "900000",
		Savings:        "300000",
		Age:            "40",
		Dependents:     "2",
		InvestmentGoal: "retirement",
		RiskTolerance:  "medium",
	}
}

func Test_Submit_Round_Trip(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), zap.NewNop())

	rec, a, err := svc.Submit(ctx, "user-1", validForm())
	req.NoError(err)
	req.Equal(LevelMedium, a.Level)
	req.Equal(LevelMedium, rec.RiskLevel)

	got, err := svc.Latest(ctx, "user-1")
	req.NoError(err)
	req.Equal(rec.RiskLevel, got.RiskLevel)
	req.Equal(validForm(), got.FormData)
}

func Test_Submit_Last_Write_Wins(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), zap.NewNop())
	tick := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { tick = tick.Add(time.Minute); return tick }

	_, _, err := svc.Submit(ctx, "user-1", validForm())
	req.NoError(err)

	aggressive := validForm()
	aggressive.Salary = "3000000"
	aggressive.Savings = "2000000"
	aggressive.Age = "25"
	aggressive.Dependents = "0"
	aggressive.RiskTolerance = "high"
	_, _, err = svc.Submit(ctx, "user-1", aggressive)
	req.NoError(err)

	got, err := svc.Latest(ctx, "user-1")
	req.NoError(err)
	req.Equal(LevelHigh, got.RiskLevel)
	req.Equal("3000000", got.FormData.Salary)
}

func Test_Submit_Validation(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	t.Run("should reject a missing user", func(t *testing.T) {
		_, _, err := svc.Submit(ctx, " ", validForm())
		require.ErrorIs(t, err, ErrInvalidForm)
	})

	t.Run("should reject non numeric amounts", func(t *testing.T) {
		f := validForm()
		f.Salary = "lots"
		_, _, err := svc.Submit(ctx, "user-1", f)
		require.ErrorIs(t, err, ErrInvalidForm)
		require.ErrorContains(t, err, "Salary (numeric)")
	})

	t.Run("should reject unknown goals", func(t *testing.T) {
		f := validForm()
		f.InvestmentGoal = "yacht"
		_, _, err := svc.Submit(ctx, "user-1", f)
		require.ErrorContains(t, err, "InvestmentGoal (oneof)")
	})
}

func Test_Latest_Not_Found(t *testing.T) {
	_, err := NewMemoryStore().Latest(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}
