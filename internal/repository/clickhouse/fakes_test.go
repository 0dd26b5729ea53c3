package clickhouse

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// fakeBatch records appended rows. Methods not overridden panic through the nil embedded interface.
type fakeBatch struct {
	driver.Batch
	rows      [][]any
	appendErr error
	sendErr   error
	aborted   bool
	sent      bool
}

func (b *fakeBatch) Append(v ...any) error {
	if b.appendErr != nil {
		return b.appendErr
	}
	b.rows = append(b.rows, v)
	return nil
}

func (b *fakeBatch) Abort() error {
	b.aborted = true
	return nil
}

func (b *fakeBatch) Send() error {
	b.sent = true
	return b.sendErr
}

type fakeRows struct {
	driver.Rows
	values   []uint64
	pos      int
	scanErr  error
	iterErr  error
	closeErr error
	closed   bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	*dest[0].(*uint64) = r.values[r.pos-1]
	return nil
}

func (r *fakeRows) Err() error { return r.iterErr }

func (r *fakeRows) Close() error {
	r.closed = true
	return r.closeErr
}
