// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hotspot

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mathext"
)

var (
	errDomain    = errors.New("regularized incomplete beta: argument out of domain")
	errUnderflow = errors.New("regularized incomplete beta: underflow")
)

// regIncBeta evaluates the regularized incomplete beta function I_x(a, b).
// Arguments outside a > 0, b > 0, 0 <= x <= 1 yield errDomain, and a result
// that is nonzero but below the smallest normal float64, or zero for x > 0,
// yields errUnderflow.
func regIncBeta(a, b, x float64) (float64, error) {
	if !(a > 0) || !(b > 0) || !(x >= 0 && x <= 1) {
		return 0, errDomain
	}
	v := mathext.RegIncBeta(a, b, x)
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, errDomain
	case v > 0 && v < 0x1p-1022, v == 0 && x > 0:
		return 0, errUnderflow
	}
	return v, nil
}

// binomialPValue returns P(X >= k) for X ~ Binomial(n, p), computed as
// I_p(k, n-k+1).  An underflowing evaluation yields 0; any other failure
// yields 1.
func binomialPValue(k, n int, p float64) float64 {
	v, err := regIncBeta(float64(k), float64(n-k+1), p)
	switch err {
	case nil:
		return v
	case errUnderflow:
		return 0
	default:
		return 1
	}
}
