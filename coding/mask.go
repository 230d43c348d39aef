// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
var maskFunc = [8]func(r, c int) bool{
	func(r, c int) bool { return (r+c)%2 == 0 },
	func(r, c int) bool { return r%2 == 0 },
	func(r, c int) bool { return c%3 == 0 },
	func(r, c int) bool { return (r+c)%3 == 0 },
	func(r, c int) bool { return (r/2+c/3)%2 == 0 },
	func(r, c int) bool { return r*c%2+r*c%3 == 0 },
	func(r, c int) bool { return (r*c%2+r*c%3)%2 == 0 },
	func(r, c int) bool { return ((r+c)%2+r*c%3)%2 == 0 },
}

// Penalty points.
const (
	RunPP  = 3  // run of 5 same colour modules, +1 per extra module
	BoxPP  = 3  // 2x2 box of same colour modules
	FindPP = 40 // 1011101 with 4 light modules on either side
	BalPP  = 10 // every 5% of deviation from 50% dark modules

	minRun = 5
)

// A Penalty holds the four penalty scores of a QR code.  The
// lowest total selects the mask.
type Penalty struct {
	Run    int // runs of 5 or more modules in rows and columns
	Box    int // 2x2 boxes
	Finder int // finder-like patterns in rows and columns
	Bal    int // dark and light balance
}

// Total returns the sum of the scores.
func (p Penalty) Total() int { return p.Run + p.Box + p.Finder + p.Bal }

// runPenalty returns the penalty for runs of minRun or more same
// colour modules in line.
func runPenalty(line []bool) int {
	p := 0
	r := 1
	for i := 1; i <= len(line); i++ {
		if i < len(line) && line[i] == line[i-1] {
			r++
			continue
		}
		if r >= minRun {
			p += RunPP + r - minRun
		}
		r = 1
	}
	return p
}

// light reports whether line[from:to] is entirely light and in bounds.
func light(line []bool, from, to int) bool {
	if from < 0 || to > len(line) {
		return false
	}
	for _, v := range line[from:to] {
		if v {
			return false
		}
	}
	return true
}

var finderPat = [7]bool{true, false, true, true, true, false, true}

// finderPenalty returns the penalty for 1011101 patterns in line
// preceded or followed by 4 light modules inside the line.  Each
// pattern is counted once.
func finderPenalty(line []bool) int {
	p := 0
Scan:
	for i := 0; i+7 <= len(line); i++ {
		for j, v := range finderPat {
			if line[i+j] != v {
				continue Scan
			}
		}
		if light(line, i-4, i) || light(line, i+7, i+11) {
			p += FindPP
		}
	}
	return p
}

// Penalty returns the penalty scores of g.
func (g *Grid) Penalty() Penalty {
	var p Penalty
	siz := g.Size
	row := make([]bool, siz)
	col := make([]bool, siz)
	for i := 0; i < siz; i++ {
		for j := 0; j < siz; j++ {
			row[j] = g.Dark(i, j)
			col[j] = g.Dark(j, i)
		}
		p.Run += runPenalty(row) + runPenalty(col)
		p.Finder += finderPenalty(row) + finderPenalty(col)
	}
	for r := 0; r+1 < siz; r++ {
		for c := 0; c+1 < siz; c++ {
			d := g.Dark(r, c)
			if g.Dark(r, c+1) == d && g.Dark(r+1, c) == d &&
				g.Dark(r+1, c+1) == d {
				p.Box += BoxPP
			}
		}
	}
	// k = floor(|dark% - 50| / 5) = floor(|20 dark - 10 total| / total)
	total := siz * siz
	k := abs(g.DarkCount()*20-total*10) / total
	p.Bal = k * BalPP
	return p
}

// maskScores returns the penalty scores of data, which must hold
// data modules and function patterns with format placeholders, under
// each mask of p.  With parallel set the masks are scored
// concurrently.
func (p *Plan) maskScores(data *Grid, parallel bool) (scores [8]Penalty) {
	score := func(k int) {
		g := data.Clone()
		g.xorMask(p.Masks[k])
		scores[k] = g.Penalty()
	}
	if !parallel {
		for k := range p.Masks {
			score(k)
		}
		return scores
	}
	// The group only bounds the number of workers: scoring cannot
	// fail, so Wait always returns nil.
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for k := range p.Masks {
		eg.Go(func() error {
			score(k)
			return nil
		})
	}
	eg.Wait()
	return scores
}

// bestMask returns the mask with the lowest total score, the lowest
// numbered on ties.
func bestMask(scores [8]Penalty) int {
	best := 0
	for k := 1; k < len(scores); k++ {
		if scores[k].Total() < scores[best].Total() {
			best = k
		}
	}
	return best
}
