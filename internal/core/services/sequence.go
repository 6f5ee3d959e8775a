package services

import (
	"fmt"
	"time"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils"
)

// SequenceGenerator produces human-readable transaction numbers. Uniqueness is
// enforced by the store; callers retry on collision.
type SequenceGenerator interface {
	Next(kind domain.TransactionKind, at time.Time) (string, error)
}

// SequenceGeneratorFunc adapts a function to SequenceGenerator.
type SequenceGeneratorFunc func(kind domain.TransactionKind, at time.Time) (string, error)

func (f SequenceGeneratorFunc) Next(kind domain.TransactionKind, at time.Time) (string, error) {
	return f(kind, at)
}

const sequenceDigits = 5

// NewRandomSequenceGenerator yields numbers like ORD-20260114-04821.
func NewRandomSequenceGenerator() SequenceGenerator {
	return SequenceGeneratorFunc(func(kind domain.TransactionKind, at time.Time) (string, error) {
		code, err := utils.GenerateNumericCode(sequenceDigits)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s-%s-%s", sequencePrefix(kind), at.UTC().Format("20060102"), code), nil
	})
}

func sequencePrefix(kind domain.TransactionKind) string {
	if kind == domain.KindRemittance {
		return "REM"
	}
	return "ORD"
}
