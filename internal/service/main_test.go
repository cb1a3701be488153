package service

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"school_records_backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}
