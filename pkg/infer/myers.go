package infer

// opType classifies a token in an edit script.
type opType int

const (
	opEqual  opType = iota // Token is unchanged between a and b.
	opInsert               // Token was inserted (present in b only).
	opDelete               // Token was deleted (present in a only).
)

// editOp is a single operation in an edit script produced by myersTokens.
type editOp struct {
	kind  opType
	token string
}

// myersTokens computes the shortest edit script transforming token sequence
// a into b using the Myers diff algorithm.
//
// The algorithm runs in O((N+M)*D) time where N and M are the lengths of a
// and b, and D is the size of the minimum edit script.
func myersTokens(a, b []string) []editOp {
	n := len(a)
	m := len(b)

	// Handle trivial cases.
	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]editOp, m)
		for i, tok := range b {
			ops[i] = editOp{kind: opInsert, token: tok}
		}
		return ops
	}
	if m == 0 {
		ops := make([]editOp, n)
		for i, tok := range a {
			ops[i] = editOp{kind: opDelete, token: tok}
		}
		return ops
	}

	max := n + m
	size := 2*max + 1

	v := make([]int, size)

	// trace[d] holds a snapshot of v after processing edit distance d.
	var trace [][]int

	for d := 0; d <= max; d++ {
		for k := -d; k <= d; k += 2 {
			idx := k + max
			var x int
			if k == -d || (k != d && v[idx-1] < v[idx+1]) {
				x = v[idx+1] // move down (insert)
			} else {
				x = v[idx-1] + 1 // move right (delete)
			}
			y := x - k

			// Follow diagonal (equal tokens).
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}

			v[idx] = x

			if x >= n && y >= m {
				snap := make([]int, size)
				copy(snap, v)
				trace = append(trace, snap)
				return backtrack(trace, a, b, d)
			}
		}

		snap := make([]int, size)
		copy(snap, v)
		trace = append(trace, snap)
	}

	// Should never reach here for valid inputs.
	return nil
}

// backtrack reconstructs the edit script from the trace of v snapshots.
func backtrack(trace [][]int, a, b []string, dFinal int) []editOp {
	n := len(a)
	m := len(b)
	max := n + m

	x := n
	y := m

	// Build the edit script in reverse.
	var ops []editOp

	for d := dFinal; d > 0; d-- {
		k := x - y
		idx := k + max

		vPrev := trace[d-1]

		var prevK int
		if k == -d || (k != d && vPrev[idx-1] < vPrev[idx+1]) {
			prevK = k + 1 // came from an insert (down move)
		} else {
			prevK = k - 1 // came from a delete (right move)
		}

		prevX := vPrev[prevK+max]
		prevY := prevX - prevK

		// Trace back along the diagonal (equal tokens).
		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, editOp{kind: opEqual, token: a[x]})
		}

		if k == prevK+1 {
			x--
			ops = append(ops, editOp{kind: opDelete, token: a[x]})
		} else {
			y--
			ops = append(ops, editOp{kind: opInsert, token: b[y]})
		}
	}

	// Remaining diagonal at d=0.
	for x > 0 && y > 0 {
		x--
		y--
		ops = append(ops, editOp{kind: opEqual, token: a[x]})
	}

	// Reverse to get forward order.
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}

	return ops
}
