// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/skip2/go-qrcode/bitset"
	"github.com/skip2/go-qrcode/reedsolomon"
)

var qrField = NewField(0x11d, 2)

func TestLogExp(t *testing.T) {
	f := qrField
	for i := 0; i < 255; i++ {
		if l := f.Log(f.Exp(i)); l != i {
			t.Fatalf("Log(Exp(%d)) = %d", i, l)
		}
	}
	for x := 1; x < 256; x++ {
		if e := f.Exp(f.Log(byte(x))); e != byte(x) {
			t.Fatalf("Exp(Log(%d)) = %d", x, e)
		}
	}
	if f.Log(0) != -1 || f.Exp(-1) != 0 {
		t.Errorf("Log(0) = %d, Exp(-1) = %d", f.Log(0), f.Exp(-1))
	}
}

func TestMul(t *testing.T) {
	f := qrField
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			want := byte(mul(x, y, 0x11d))
			if got := f.Mul(byte(x), byte(y)); got != want {
				t.Fatalf("Mul(%d, %d) = %d, want %d", x, y, got, want)
			}
		}
		if x != 0 {
			if p := f.Mul(byte(x), f.Inv(byte(x))); p != 1 {
				t.Fatalf("%d * Inv(%d) = %d", x, x, p)
			}
		}
	}
}

func TestReducible(t *testing.T) {
	for _, p := range []int{0x11d, 0x11b, 0x12d} {
		if reducible(p) {
			t.Errorf("reducible(%#x) = true", p)
		}
	}
	if !reducible(0x100) {
		t.Errorf("reducible(0x100) = false")
	}
}

func TestGen(t *testing.T) {
	// x^7 + α^87 x^6 + α^229 x^5 + α^146 x^4 + α^149 x^3 +
	// α^238 x^2 + α^102 x + α^21
	want := []int{0, 87, 229, 146, 149, 238, 102, 21}
	g := qrField.Gen(7)
	var got []int
	for _, v := range g {
		got = append(got, qrField.Log(v))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Gen(7) exponents mismatch (-want +got):\n%s", diff)
	}
}

func TestECC(t *testing.T) {
	// Version 1-M, "01234567".
	data := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64,
		236, 17, 236, 17, 236, 17}
	want := []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}
	check := make([]byte, len(want))
	NewRSEncoder(qrField, len(want)).ECC(data, check)
	if !bytes.Equal(check, want) {
		t.Errorf("ECC = %v, want %v", check, want)
	}
}

// skip2ECC returns the error correction bytes computed by
// github.com/skip2/go-qrcode.
func skip2ECC(data []byte, n int) []byte {
	bs := bitset.New()
	bs.AppendBytes(data)
	out := reedsolomon.Encode(bs, n)
	ecc := make([]byte, n)
	for i := range ecc {
		ecc[i] = out.ByteAt((len(data) + i) * 8)
	}
	return ecc
}

func TestECCReference(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, n := range []int{7, 10, 13, 17, 18, 22, 26, 28, 30} {
		rs := NewRSEncoder(qrField, n)
		for _, dlen := range []int{1, 9, 16, 43, 68, 116} {
			t.Run(fmt.Sprintf("%d/%d", dlen, n), func(t *testing.T) {
				data := make([]byte, dlen)
				r.Read(data)
				got := make([]byte, n)
				rs.ECC(data, got)
				if want := skip2ECC(data, n); !bytes.Equal(got, want) {
					t.Errorf("ECC(%x) = %x, want %x",
						data, got, want)
				}
			})
		}
	}
}

func TestECCZero(t *testing.T) {
	check := []byte{1, 2, 3, 4, 5}
	NewRSEncoder(qrField, 5).ECC(make([]byte, 12), check)
	if !bytes.Equal(check, make([]byte, 5)) {
		t.Errorf("ECC of zeros = %v", check)
	}
}

func BenchmarkECC(b *testing.B) {
	data := make([]byte, 116)
	check := make([]byte, 30)
	rs := NewRSEncoder(qrField, len(check))
	for i := 0; i < b.N; i++ {
		rs.ECC(data, check)
	}
	b.SetBytes(int64(len(data)))
}
