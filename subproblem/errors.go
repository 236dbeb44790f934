package subproblem

import "errors"

// ErrExhausted names the "no further solutions" condition. No Solve
// in this package returns it: each reports exhaustion as (false, nil).
var ErrExhausted = errors.New("subproblem: no further solutions")
