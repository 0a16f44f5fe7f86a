package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"leadpulse/pkg/contracts/domain"
)

// WriteSnapshotJSON streams the full snapshot as an indented JSON document.
func WriteSnapshotJSON(w io.Writer, snap *domain.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
