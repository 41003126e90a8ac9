// Package oracle defines the membership-oracle contract consumed by the
// observation table and a set of composable adapters.
//
// An oracle answers an ordered batch of (prefix, suffix) queries with one
// answer per query, in the same order:
//
//	mo := oracle.NewAnswererOracle(oracle.AnswererFunc[string, bool](
//	    func(ctx context.Context, prefix, suffix word.Word[string]) (bool, error) {
//	        return sul.Accepts(prefix.Concat(suffix)), nil
//	    }))
//
// Adapters wrap any oracle:
//
//   - Cache memoizes answers and can spot-check them for non-determinism.
//   - Parallel answers large batches in concurrent chunks.
//   - RateLimited throttles the query rate towards a real system.
//   - Counter counts batches and queries and reports them to an observer.
//
// A typical stack is Counter(Cache(Parallel(RateLimited(sul)))).
package oracle
