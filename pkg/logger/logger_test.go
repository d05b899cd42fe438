package logger_test

import (
	"testing"

	"github.com/tripwire-go/twdb/pkg/logger"
)

func Test_New_Returns_A_Usable_Logger(t *testing.T) {
	t.Parallel()

	log := logger.New("blockfile")
	if log == nil {
		t.Fatal("New() = nil, want a usable logger")
	}
	log.Infow("message", "key", "value")
}

func Test_NewDevelopment_Returns_A_Usable_Logger(t *testing.T) {
	t.Parallel()

	log := logger.NewDevelopment("hierdb")
	if log == nil {
		t.Fatal("NewDevelopment() = nil, want a usable logger")
	}
	log.Infow("message")
}

func Test_NewNop_Discards_Without_Panicking(t *testing.T) {
	t.Parallel()

	log := logger.NewNop()
	log.Infow("this should go nowhere")
	log.Errorw("neither should this")
}
