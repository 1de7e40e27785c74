package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zhubert/parley/internal/ui"
)

func TestSaveConfigOrFlash_Success(t *testing.T) {
	m := testModel(t, testConfig(t))

	cmd := m.saveConfigOrFlash()
	if cmd != nil {
		t.Error("expected nil cmd on successful save, got non-nil")
	}
	if m.footer.HasFlash() {
		t.Error("successful save should not flash")
	}
}

func TestSaveConfigOrFlash_Error(t *testing.T) {
	cfg := testConfig(t)
	// A regular file where a directory is needed makes Save fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg.SetFilePath(filepath.Join(blocker, "sub", "config.json"))
	m := testModel(t, cfg)

	cmd := m.saveConfigOrFlash()
	if cmd == nil {
		t.Error("expected non-nil cmd on failed save, got nil")
	}
	if !m.footer.HasFlash() {
		t.Error("failed save should flash an error")
	}
}

func TestFlashTick_ClearsExpiredFlash(t *testing.T) {
	m := testModel(t, testConfig(t))
	m.footer.SetFlashWithDuration("saved", ui.FlashSuccess, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, cmd := m.Update(ui.FlashTickMsg(time.Now()))
	if cmd != nil {
		t.Error("no tick should be scheduled once the flash expired")
	}
	if m.footer.HasFlash() {
		t.Error("expired flash should be cleared")
	}
}

func TestFlashTick_KeepsTickingWhileShown(t *testing.T) {
	m := testModel(t, testConfig(t))
	m.ShowFlashSuccess("saved")

	_, cmd := m.Update(ui.FlashTickMsg(time.Now()))
	if cmd == nil {
		t.Error("a live flash should schedule another tick")
	}
}
