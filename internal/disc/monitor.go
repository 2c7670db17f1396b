package disc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"tvrip/internal/logging"
)

// WaitForDisc blocks until a disc-insertion udev event for the given device
// arrives, then waits for the drive to report the disc readable. It is used
// by scan --wait so a rip session can be started before the disc goes in.
func WaitForDisc(ctx context.Context, device string, logger *slog.Logger) error {
	log := logging.NewComponentLogger(logger, "monitor")
	device = strings.TrimSpace(device)
	if device == "" {
		return fmt.Errorf("source device not configured")
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return fmt.Errorf("connect to udev netlink socket: %w", err)
	}
	defer conn.Close()

	events := make(chan netlink.UEvent)
	errs := make(chan error)
	quit := conn.Monitor(events, errs, nil)
	defer close(quit)

	log.Info("waiting for disc insertion", logging.String("device", device))
	base := filepath.Base(device)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			return fmt.Errorf("udev monitor: %w", err)
		case event := <-events:
			if !discInsertedEvent(event, base) {
				continue
			}
			log.Info("disc inserted", logging.String("device", device))
			if _, err := WaitForReady(ctx, device, driveReadyTimeout); err != nil {
				return err
			}
			return nil
		}
	}
}

const driveReadyTimeout = 60 * time.Second

// discInsertedEvent reports whether the udev event signals media appearing
// in the named block device.
func discInsertedEvent(event netlink.UEvent, device string) bool {
	if event.Env["DEVNAME"] != "" && filepath.Base(event.Env["DEVNAME"]) != device {
		return false
	}
	if event.Env["DEVNAME"] == "" && filepath.Base(event.KObj) != device {
		return false
	}
	if event.Action == netlink.CHANGE || event.Action == netlink.ADD {
		return event.Env["ID_CDROM_MEDIA"] == "1" || event.Env["DISK_MEDIA_CHANGE"] == "1"
	}
	return false
}
