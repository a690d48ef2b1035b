package db_test

import (
	"testing"

	"github.com/vmikk/adegenet/internal/iodb"
	"github.com/vmikk/adegenet/pkg/db"
)

func TestPgxOperatorImplementsInterface(t *testing.T) {
	var _ db.Operator = iodb.NewPgxOperator()
}
