package services

import (
	"context"
	"testing"

	"lendcheck/internal/adapters/persistence/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplicantInput() *ApplicantInput {
	return &ApplicantInput{
		FullName:               "Priya Nair",
		DateOfBirth:            "1988-09-23",
		EmploymentType:         "SALARIED",
		MonthlyIncome:          decimal.NewFromInt(85000),
		ExistingEMIObligations: decimal.NewFromInt(5000),
		Country:                "IN",
		Active:                 true,
	}
}

func TestApplicantService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApplicantService(repositories.NewApplicantProfileRepository(db))

	profile, err := svc.Create(context.Background(), 1, validApplicantInput())
	require.NoError(t, err)
	assert.NotZero(t, profile.ID)
	assert.Equal(t, uint(1), profile.UserID)
	assert.Equal(t, 1988, profile.DateOfBirth.Year())
}

func TestApplicantService_Create_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApplicantService(repositories.NewApplicantProfileRepository(db))

	tests := []struct {
		name    string
		mutate  func(*ApplicantInput)
		wantErr error
	}{
		{
			name: "negative income",
			mutate: func(in *ApplicantInput) {
				in.MonthlyIncome = decimal.NewFromInt(-1)
			},
			wantErr: ErrNegativeIncome,
		},
		{
			name: "negative obligations",
			mutate: func(in *ApplicantInput) {
				in.ExistingEMIObligations = decimal.NewFromInt(-100)
			},
			wantErr: ErrNegativeObligations,
		},
		{
			name: "unknown employment type",
			mutate: func(in *ApplicantInput) {
				in.EmploymentType = "FREELANCE"
			},
			wantErr: ErrInvalidEmploymentType,
		},
		{
			name: "bad date format",
			mutate: func(in *ApplicantInput) {
				in.DateOfBirth = "23/09/1988"
			},
			wantErr: ErrInvalidDateFormat,
		},
		{
			name: "date of birth in the future",
			mutate: func(in *ApplicantInput) {
				in.DateOfBirth = "2099-01-01"
			},
			wantErr: ErrInvalidDateOfBirth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validApplicantInput()
			tt.mutate(input)
			_, err := svc.Create(context.Background(), 1, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplicantService_Update_NotOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApplicantService(repositories.NewApplicantProfileRepository(db))

	profile, err := svc.Create(context.Background(), 1, validApplicantInput())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), profile.ID, 2, validApplicantInput())
	assert.ErrorIs(t, err, ErrNotProfileOwner)
}

func TestApplicantService_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApplicantService(repositories.NewApplicantProfileRepository(db))

	_, err := svc.Create(context.Background(), 1, validApplicantInput())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, validApplicantInput())
	require.NoError(t, err)

	profiles, err := svc.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}
