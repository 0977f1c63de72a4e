// Package journal appends completed receipts to a JSON Lines file. It is a
// write-only export for later inspection; the catalog is never restored
// from it.
package journal

import (
	"io"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/minimart/checkout/internal/domain/order"
)

// Writer appends receipts to an underlying stream, one JSON object per line.
type Writer struct {
	w     io.Writer
	close func() error
}

// Open creates a Writer appending to the file at path.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open receipt journal")
	}
	return &Writer{w: f, close: f.Close}, nil
}

// New creates a Writer over an arbitrary stream.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Append writes the receipt as a single JSON line.
func (j *Writer) Append(r *order.Receipt) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(r.ID) })
		e.Field("created_at", func(e *jx.Encoder) { e.Str(r.CreatedAt.Format(time.RFC3339)) })
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, line := range r.Lines {
					e.Obj(func(e *jx.Encoder) {
						e.Field("name", func(e *jx.Encoder) { e.Str(line.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(line.Quantity) })
						e.Field("price", func(e *jx.Encoder) { e.Num(jx.Num(line.Price.String())) })
					})
				}
			})
		})
		e.Field("free_items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, f := range r.FreeItems {
					e.Obj(func(e *jx.Encoder) {
						e.Field("name", func(e *jx.Encoder) { e.Str(f.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(f.Quantity) })
					})
				}
			})
		})
		e.Field("total_amount", func(e *jx.Encoder) { e.Num(jx.Num(r.TotalAmount.String())) })
		e.Field("total_quantity", func(e *jx.Encoder) { e.Int(r.TotalQuantity) })
		e.Field("promotion_discount", func(e *jx.Encoder) { e.Num(jx.Num(r.PromotionDiscount.String())) })
		e.Field("membership_discount", func(e *jx.Encoder) { e.Num(jx.Num(r.MembershipDiscount.String())) })
		e.Field("final_amount", func(e *jx.Encoder) { e.Num(jx.Num(r.FinalAmount.String())) })
	})

	buf := append(e.Bytes(), '\n')
	if _, err := j.w.Write(buf); err != nil {
		return errors.Wrap(err, "write receipt")
	}
	return nil
}

// Close closes the underlying file, if any.
func (j *Writer) Close() error {
	if j.close == nil {
		return nil
	}
	return j.close()
}
