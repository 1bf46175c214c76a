package analyzing

import (
	"os"
	"testing"

	"github.com/vfg2006/invoicing-api/pkg/log"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}
