package bytecode

import "fmt"

// Address is a byte offset into a text pool.
type Address uint32

// Offset returns the address moved by delta bytes. The result wraps on
// overflow; callers keep it inside the pool.
func (a Address) Offset(delta int32) Address {
	return Address(uint32(int64(a) + int64(delta)))
}

func (a Address) String() string {
	return fmt.Sprintf("0x%04x", uint32(a))
}

// AddressRange is the half-open byte span [Base, Base+Range) of a text pool.
type AddressRange struct {
	Base  Address
	Range uint32
}

// End returns the offset one past the last byte of the span.
func (r AddressRange) End() uint64 {
	return uint64(r.Base) + uint64(r.Range)
}

// Within reports whether the span lies inside a pool of n bytes.
func (r AddressRange) Within(n int) bool {
	return r.End() <= uint64(n)
}

// String renders the span as first..last in hexadecimal. An empty span
// renders its base twice.
func (r AddressRange) String() string {
	last := r.Base
	if r.Range > 0 {
		last = r.Base.Offset(int32(r.Range - 1))
	}
	return fmt.Sprintf("%s..%s", r.Base, last)
}
