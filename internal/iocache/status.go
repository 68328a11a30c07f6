package iocache

import (
	"fmt"
	"io"

	"github.com/huangsam/voltview/schema"
)

// PrintStoreStatus prints telemetry store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Records: %d\n", status.TotalRecords)
	if status.TotalRecords > 0 {
		_, _ = fmt.Fprintf(w, "First Record: %s\n", status.FirstRecordTime)
		_, _ = fmt.Fprintf(w, "Last Record: %s\n", status.LastRecordTime)
		_, _ = fmt.Fprintf(w, "Last Import: %s\n", status.LastImportTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}
