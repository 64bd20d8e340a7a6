package cmd

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankCommandStructure(t *testing.T) {
	assert.Equal(t, "bank", bankCmd.Use)
	assert.Equal(t, "list", bankListCmd.Use)
	assert.NotNil(t, bankListCmd.RunE)
	assert.Contains(t, bankListCmd.Long, "Example:")

	limit, err := bankListCmd.Flags().GetInt("limit")
	assert.NoError(t, err)
	assert.Equal(t, 20, limit)

	found := false
	for _, c := range bankCmd.Commands() {
		if c.Name() == "list" {
			found = true
		}
	}
	assert.True(t, found, "list should be a bank subcommand")
}

func TestRunBankList_Disabled(t *testing.T) {
	isolate(t, "")

	err := runBankList(bankListCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem bank is disabled")
}

func expectList(mock sqlmock.Sqlmock, limit int) {
	created := time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "seed", "schedule", "conflict_serializable", "serializable", "s2pl", "created_at"}).
		AddRow(4, 42, "R1(A) R2(A) W1(A) W2(A)", false, true, true, created)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS `problems`")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM `problems` ORDER BY id DESC LIMIT ?")).
		WithArgs(limit).
		WillReturnRows(rows)
	mock.ExpectClose()
}

func TestRunBankList_Text(t *testing.T) {
	buf := isolate(t, bankConfig)
	mock := mockBank(t)
	bankLimit = 5
	expectList(mock, 5)

	require.NoError(t, runBankList(bankListCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "R1(A) R2(A) W1(A) W2(A)")
	assert.Contains(t, out, "2026-10-02 09:00")
	assert.Contains(t, out, "Total: 1 problem(s)")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunBankList_YAML(t *testing.T) {
	buf := isolate(t, bankConfig)
	mock := mockBank(t)
	outputFormat = "yaml"
	expectList(mock, 20)

	require.NoError(t, runBankList(bankListCmd, nil))
	assert.Contains(t, buf.String(), "seed: 42")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunBankList_QueryError(t *testing.T) {
	isolate(t, bankConfig)
	mock := mockBank(t)

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("table locked"))
	mock.ExpectClose()

	err := runBankList(bankListCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list problems")
}
