package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/logger"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// Error variables
var (
	ErrInvalidAccountID   = errors.New("account id is required")
	ErrInvalidDescription = errors.New("description is required and must not exceed 255 characters")
	ErrInvalidCurrency    = errors.New("currency must be a 3-letter code")
	ErrUnknownAccount     = errors.New("account does not exist or does not belong to the caller")
)

const maxDescriptionLength = 255

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// LedgerWriter persists a transaction together with its staged event.
type LedgerWriter interface {
	Save(ctx context.Context, txn models.TransactionDB, event models.TransactionCreated) error
}

// LedgerReader serves caller-scoped transaction listings.
type LedgerReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]models.TransactionDB, error)
}

// AccountChecker probes account existence and ownership.
type AccountChecker interface {
	Exists(ctx context.Context, accountID, userID uuid.UUID) (bool, error)
}

// DispatchNudger wakes the outbox dispatcher after a successful write.
type DispatchNudger interface {
	Nudge()
}

// RecordParams is a transaction intent as accepted from the caller.
type RecordParams struct {
	AccountID    uuid.UUID       // Target account, required
	Amount       decimal.Decimal // Monetary amount; sign is not interpreted, Type carries credit/debit
	Currency     string          // Optional; the configured default applies when empty
	Type         string          // Must parse to credit or debit
	Description  string          // Required, bounded length
	SpendingType *string         // Optional budgeting label, stored as given
	TxHash       *string         // Optional opaque external reference
}

// TransactionService records immutable ledger transactions. Each successful
// Record persists exactly one row and stages exactly one TransactionCreated
// event in the same database transaction.
type TransactionService struct {
	writer          LedgerWriter
	reader          LedgerReader
	accounts        AccountChecker // nil disables the ownership probe
	nudger          DispatchNudger
	defaultCurrency string
}

// NewTransactionService creates a TransactionService. Pass a nil accounts
// checker to accept any account id without verification; the choice is made
// explicitly by configuration, never implied.
func NewTransactionService(
	writer LedgerWriter,
	reader LedgerReader,
	accounts AccountChecker,
	nudger DispatchNudger,
	defaultCurrency string,
) *TransactionService {
	return &TransactionService{
		writer:          writer,
		reader:          reader,
		accounts:        accounts,
		nudger:          nudger,
		defaultCurrency: defaultCurrency,
	}
}

// Record validates the intent, persists the transaction with its staged
// event, wakes the dispatcher, and returns the persisted record. A nil
// error guarantees durable persistence; event delivery is asynchronous and
// owned by the dispatcher. No idempotency key is accepted: structurally
// identical intents produce distinct transactions and distinct events.
func (svc *TransactionService) Record(ctx context.Context, userID uuid.UUID, p RecordParams) (*models.TransactionDB, error) {
	if p.AccountID == uuid.Nil {
		return nil, ErrInvalidAccountID
	}

	txType, err := models.ParseTransactionType(p.Type)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(p.Description)
	if description == "" || len(description) > maxDescriptionLength {
		return nil, ErrInvalidDescription
	}

	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = svc.defaultCurrency
	}
	if !currencyPattern.MatchString(currency) {
		return nil, ErrInvalidCurrency
	}

	if svc.accounts != nil {
		ok, err := svc.accounts.Exists(ctx, p.AccountID, userID)
		if err != nil {
			logger.Log.Errorw("account probe failed", "account_id", p.AccountID, "error", err)
			return nil, err
		}
		if !ok {
			return nil, ErrUnknownAccount
		}
	}

	txn := models.TransactionDB{
		TransactionID: uuid.New(),
		AccountID:     p.AccountID,
		UserID:        userID,
		Amount:        p.Amount.Round(2),
		Currency:      currency,
		Type:          txType,
		Description:   description,
		SpendingType:  p.SpendingType,
		TxHash:        p.TxHash,
		CreatedAt:     time.Now().UTC(),
	}

	event := models.TransactionCreated{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		UserID:        txn.UserID,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		Type:          txn.Type,
		CreatedAt:     txn.CreatedAt,
	}

	if err := svc.writer.Save(ctx, txn, event); err != nil {
		logger.Log.Errorw("failed to record transaction",
			"transaction_id", txn.TransactionID,
			"account_id", txn.AccountID,
			"error", err,
		)
		return nil, err
	}

	if svc.nudger != nil {
		svc.nudger.Nudge()
	}

	return &txn, nil
}

// List returns the caller's transactions, newest first, optionally filtered
// to one account.
func (svc *TransactionService) List(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]models.TransactionDB, error) {
	txns, err := svc.reader.ListByUser(ctx, userID, accountID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "user_id", userID, "error", err)
		return nil, err
	}
	return txns, nil
}
