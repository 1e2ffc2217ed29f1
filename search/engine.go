package search

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/dl85go/dl85/cache"
	"github.com/dl85go/dl85/config"
	"github.com/dl85go/dl85/core"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/depth2"
	"github.com/dl85go/dl85/errorfn"
	"github.com/dl85go/dl85/heuristic"
	"github.com/dl85go/dl85/rules"
	"github.com/dl85go/dl85/stats"
	"github.com/dl85go/dl85/tree"
)

// floatNullEps mirrors the "is numerically zero" tolerance used when
// comparing error sums against lower bounds.
const floatNullEps = 1e-9

// Engine is the DL85 branch-and-bound learner. All state
// lives on the instance; one engine owns one cache and must not be
// shared across goroutines.
type Engine struct {
	cfg   *config.Config
	cache *cache.Cache
	errFn *errorfn.Wrapper
	heur  heuristic.Heuristic
	d2    depth2.Optimizer

	nodeRules   *rules.Manager
	searchRules *rules.Manager
	timeRule    *rules.TimeLimitRule
	simRule     *rules.SimilarityLBRule

	stats stats.Statistics
	tree  *tree.Tree
	log   zerolog.Logger

	started    bool
	rootCands  []core.Item
	minGainGap float64
}

// searchCtx carries the cumulative search-rule quantities along the
// current path: discrepancy (sum of sibling ranks) and gain gap.
type searchCtx struct {
	discrepancy int
	gainGap     float64
}

// Statistics returns a copy of the run counters, valid after each round.
func (e *Engine) Statistics() stats.Statistics { return e.stats }

// Tree returns the best tree assembled so far, or nil before any fit.
func (e *Engine) Tree() *tree.Tree { return e.tree }

// Cache exposes the memoization trie for inspection and tests.
func (e *Engine) Cache() *cache.Cache { return e.cache }

// Reset discards the cache, statistics, and relaxation progress so the
// engine can fit a different cover from scratch. A plain second Fit on
// the same engine deliberately reuses the cache.
func (e *Engine) Reset() {
	e.cache = cache.Init(e.cfg.CacheInitSize)
	e.stats = stats.Statistics{}
	e.tree = nil
	e.started = false
	e.rootCands = nil
	e.minGainGap = 0
	e.nodeRules = buildNodeRules(e.cfg)
	e.searchRules = buildSearchRules(e.cfg)
}

// Fit runs PartialFit rounds until no relaxable rule asks for another
// pass or the time budget is exhausted, then returns the last round's
// result. The best tree and statistics are available afterwards even on
// timeout.
func (e *Engine) Fit(c *cover.Cover) core.SearchResult {
	res := e.PartialFit(c)
	for res.Reason == core.ReasonRuleReason && !e.timeRule.Expired() {
		res = e.PartialFit(c)
	}
	e.log.Info().
		Float64("error", res.Error).
		Str("reason", res.Reason.String()).
		Int("restarts", e.stats.Restarts).
		Int("cache_size", e.stats.CacheSize).
		Int("nodes_expanded", e.stats.NodesExpanded).
		Float64("seconds", e.stats.DurationSeconds).
		Msg("fit complete")

	return res
}

// PartialFit runs one search round. The first round seeds the root,
// materializes and sorts the root candidates, and starts the clock;
// later rounds relax every rule and re-enter recursion with the root's
// current error as the bound.
func (e *Engine) PartialFit(c *cover.Cover) core.SearchResult {
	begin := time.Now()
	if !e.started {
		e.init(c)
	} else {
		e.nodeRules.RelaxAll()
		e.searchRules.RelaxAll()
	}

	root := e.cache.Root()
	ub := math.Min(root.LeafError, e.cfg.MaxError)
	if !math.IsInf(root.Error, 1) {
		ub = math.Min(root.Error, e.cfg.MaxError)
	}

	sim := &similarityCover{}
	_, reason, intersected := e.recurse(c, nil, e.rootCands, 0, core.NoItem, cache.RootIndex, true, sim, searchCtx{}, ub)

	e.bootstrapRuleParams()
	e.stats.Restarts++
	e.stats.CacheSize = e.cache.Size()
	e.stats.DurationSeconds += time.Since(begin).Seconds()
	e.tree = e.buildSolutionTree()
	e.stats.TreeError = e.tree.RootError()

	if reason == core.ReasonRuleReason && !e.searchRules.IsActive() && !e.nodeRules.IsActive() {
		reason = core.ReasonDone
	}

	e.log.Debug().
		Int("round", e.stats.Restarts).
		Float64("error", root.Error).
		Str("reason", reason.String()).
		Int("cache_size", e.stats.CacheSize).
		Msg("round complete")

	return core.SearchResult{Error: root.Error, HasIntersected: intersected, Reason: reason}
}

// init seeds the root entry, builds and orders the root candidate list,
// and arms the clock and the similarity singleton.
func (e *Engine) init(c *cover.Cover) {
	e.stats.NumSamples = c.NumSamples()
	e.stats.NumAttributes = c.NumAttributes()

	leafErr, out := e.errFn.Leaf(c)
	e.cache.UpdateRoot().LeafError(leafErr).Output(out).Size(c.Count())

	support := c.Count()
	cands := make([]core.Item, 0, c.NumAttributes())
	for a := 0; a < c.NumAttributes(); a++ {
		it := core.MakeItem(a, 1)
		if e.cfg.MinSupport > 1 {
			right := c.CountIfBranchOn(it)
			if right < e.cfg.MinSupport || support-right < e.cfg.MinSupport {
				continue
			}
		}
		cands = append(cands, it)
	}
	cands, _ = e.orderCandidates(c, cands)
	e.rootCands = cands

	if e.cfg.LowerBoundPolicy == core.LowerBoundSimilarity {
		e.simRule.Activate()
	} else {
		e.simRule.Deactivate()
	}
	e.nodeRules.ActivateAll()
	e.searchRules.ActivateAll()
	e.timeRule.Start(e.cfg.MaxTime)
	e.started = true
}

// orderCandidates applies the heuristic, also returning per-candidate
// gain gaps (best score minus this score) when the heuristic exposes
// scores; gaps are nil otherwise.
func (e *Engine) orderCandidates(c *cover.Cover, cands []core.Item) ([]core.Item, []float64) {
	sh, ok := e.heur.(heuristic.Scored)
	if !ok {
		return e.heur.Compute(c, cands), nil
	}
	ordered, scores := sh.ComputeScored(c, cands)
	if len(scores) == 0 {
		return ordered, nil
	}
	gaps := make([]float64, len(scores))
	for i, s := range scores {
		gaps[i] = scores[0] - s
		if e.stats.Restarts == 0 && gaps[i] > 0 && (e.minGainGap == 0 || gaps[i] < e.minGainGap) {
			e.minGainGap = gaps[i]
		}
	}

	return ordered, gaps
}

// bootstrapRuleParams feeds first-round observations back into the
// relaxable search rules: the true maximum discrepancy once the root
// candidate count is known, and the smallest positive gain gap as the
// Gain rule's step delta.
func (e *Engine) bootstrapRuleParams() {
	if e.stats.Restarts != 0 {
		return
	}
	if e.cfg.Discrepancy != nil && e.cfg.Discrepancy.Limit <= 0 {
		if r, ok := e.searchRules.Get(rules.KindDiscrepancy); ok {
			if d, isDiscrepancy := r.(*rules.DiscrepancyRule); isDiscrepancy {
				d.SetHardLimit(e.maxDiscrepancy())
			}
		}
	}
	if e.cfg.Gain != nil && e.cfg.Gain.Epsilon <= 0 && e.minGainGap > 0 {
		if r, ok := e.searchRules.Get(rules.KindGain); ok {
			if g, isGain := r.(*rules.GainRule); isGain {
				g.SetEpsilon(e.minGainGap)
			}
		}
	}
}

// maxDiscrepancy is the largest discrepancy any root-to-leaf path can
// accumulate: the node at depth d-1 (root = 0) keeps at most
// |candidates| - d + 1 candidates, so its worst sibling rank is
// |candidates| - d.
func (e *Engine) maxDiscrepancy() int {
	total := 0
	for d := 1; d <= e.cfg.MaxDepth; d++ {
		if step := len(e.rootCands) - d; step > 0 {
			total += step
		}
	}

	return total
}

func (e *Engine) timeReason() core.Reason {
	if e.cfg.TimeRelaxable {
		return core.ReasonRuleReason
	}

	return core.ReasonTimeLimitReached
}

// nodeContext assembles the rule context for node-rule evaluation.
func (e *Engine) nodeContext(en *cache.Entry, depth int, item core.Item, ub float64) *core.RuleContext {
	return &core.RuleContext{
		Depth:          depth,
		LastItem:       item,
		Support:        en.Size,
		UpperBound:     ub,
		NodeUpperBound: en.UpperBound,
		LowerBound:     en.LowerBound,
		Error:          en.Error,
		LeafError:      en.LeafError,
	}
}

// applyStop writes a stopping rule's verdict onto the cache entry and
// returns the value the caller should propagate. RuleReason stops pin
// the stored upper bound at infinity so the node is re-expanded on a
// later round.
func (e *Engine) applyStop(idx cache.Index, res rules.Result, ub float64) float64 {
	en := e.cache.Node(idx)
	upd := e.cache.UpdateNode(idx)
	value := en.Error
	if res.IsLeaf {
		upd.Error(res.Value).Leaf(true)
		value = res.Value
	}
	if res.IsOptimal {
		upd.Optimal(true)
	}
	switch {
	case res.Reason == core.ReasonRuleReason:
		upd.UpperBound(core.Infinity)
	case res.IsLeaf || res.IsOptimal:
		upd.UpperBound(ub)
	}

	return value
}

// recurse explores the subproblem reached by parentItem. The cover is
// already committed when parentIsNew is true (the seeding push); else it
// is committed here after the rule gate passes. The third return value
// reports whether the commit happened, so the caller balances the trail.
func (e *Engine) recurse(
	c *cover.Cover,
	path []core.Item,
	candidates []core.Item,
	depth int,
	parentItem core.Item,
	idx cache.Index,
	parentIsNew bool,
	sim *similarityCover,
	sctx searchCtx,
	upperBound float64,
) (float64, core.Reason, bool) {
	e.stats.NodesExpanded++
	entry := e.cache.Node(idx)

	if e.timeRule.Expired() {
		if math.IsInf(entry.Error, 1) {
			e.cache.UpdateNode(idx).Error(entry.LeafError).Leaf(true)
		}

		return e.cache.Node(idx).Error, e.timeReason(), false
	}

	// Step 1: node-rule gate on the cached entry.
	if res := e.nodeRules.Evaluate(e.nodeContext(entry, depth, parentItem, upperBound)); res.Stop {
		value := e.applyStop(idx, res, upperBound)

		return value, res.Reason, false
	}

	// Step 2: commit the branch if seeding did not already.
	if !parentIsNew {
		c.BranchOn(parentItem)
	}

	// Step 3: similarity-based lower-bound lift.
	if e.simRule.State() == core.RuleActive {
		if lb := sim.bound(c); lb > entry.LowerBound {
			e.cache.UpdateNode(idx).LowerBound(lb)
		}
		simCtx := &core.RuleContext{
			Depth:      depth,
			Support:    entry.Size,
			UpperBound: upperBound,
			LowerBound: entry.LowerBound,
			Error:      entry.LeafError,
			LeafError:  entry.LeafError,
		}
		if res := e.simRule.Evaluate(simCtx, entry.LowerBound); res.Stop {
			value := entry.Error
			if res.IsLeaf {
				value = e.applyStop(idx, res, upperBound)
			}

			return value, res.Reason, true
		}
	}

	// Step 4: depth-2 terminal specialization.
	if e.cfg.Specialization == core.SpecializationEnabled && e.cfg.MaxDepth-depth <= 2 {
		if value, reason, ok := e.applyDepth2(c, path, idx, depth, upperBound, candidates); ok {
			return value, reason, true
		}
	}

	// Step 5: filter inherited candidates against min-support.
	nodeCands := e.filterCandidates(c, candidates, parentItem, entry.Size)
	if len(nodeCands) == 0 {
		e.cache.UpdateNode(idx).Error(entry.LeafError).Leaf(true).Optimal(true).UpperBound(upperBound)

		return entry.LeafError, core.ReasonNoCandidates, true
	}

	// Step 6: optional per-node re-sort, capturing gain gaps.
	var gaps []float64
	if e.cfg.AlwaysSort {
		nodeCands, gaps = e.orderCandidates(c, nodeCands)
	}

	// Step 7: iterate candidates in order.
	childSim := &similarityCover{}
	minLowerBound := core.Infinity
	pruned := false
	timedOut := false

	// A finite cached error from an earlier round is the bound to beat:
	// re-expansion must never store a worse tree.
	ubLocal := upperBound
	if !math.IsInf(entry.Error, 1) && entry.Error < ubLocal {
		ubLocal = entry.Error
	}

	for position, cand := range nodeCands {
		attr := cand.Attribute()
		childCtx := searchCtx{
			discrepancy: sctx.discrepancy + position,
			gainGap:     sctx.gainGap,
		}
		if position < len(gaps) {
			childCtx.gainGap += gaps[position]
		}

		srCtx := &core.RuleContext{
			Depth:          depth,
			LastItem:       parentItem,
			Support:        entry.Size,
			Position:       position,
			Discrepancy:    childCtx.discrepancy,
			GainGap:        childCtx.gainGap,
			UpperBound:     ubLocal,
			NodeUpperBound: entry.UpperBound,
			LowerBound:     entry.LowerBound,
			Error:          entry.Error,
			LeafError:      entry.LeafError,
		}
		if res := e.searchRules.Evaluate(srCtx); res.Stop {
			if res.Reason == core.ReasonRuleReason {
				pruned = true
			}

			break
		}

		firstVal, firstLB, secondLB := e.branchingChoice(c, path, attr, childSim)

		// First child.
		firstItem := core.MakeItem(attr, firstVal)
		firstErr, firstReason, firstIdx := e.exploreChild(c, &path, nodeCands, depth, firstItem, firstLB, childSim, childCtx, ubLocal)
		if firstReason == core.ReasonRuleReason {
			pruned = true
		}
		if firstReason == core.ReasonTimeLimitReached {
			timedOut = true

			break
		}

		// Sibling-pruning gate: the second branch cannot bring the sum
		// under the bound, so skip it and record the inferred bound.
		if firstErr >= ubLocal-secondLB {
			lbCand := firstErr + secondLB
			if math.IsInf(firstErr, 1) {
				lbCand = e.cache.Node(firstIdx).LowerBound + secondLB
			}
			if lbCand < minLowerBound {
				minLowerBound = lbCand
			}
			e.stats.SiblingSkips++

			continue
		}

		// Second child, under the remaining budget.
		secondItem := firstItem.Sibling()
		secondErr, secondReason, _ := e.exploreChild(c, &path, nodeCands, depth, secondItem, secondLB, childSim, childCtx, ubLocal-firstErr)
		if secondReason == core.ReasonRuleReason {
			pruned = true
		}
		if secondReason == core.ReasonTimeLimitReached {
			timedOut = true

			break
		}

		featureErr := firstErr + secondErr
		if featureErr < ubLocal {
			ubLocal = featureErr
			e.cache.UpdateNode(idx).Error(featureErr).Test(attr).Leaf(false)
			if entry.LowerBound >= featureErr-floatNullEps {
				e.cache.UpdateNode(idx).Optimal(true).UpperBound(upperBound)

				return featureErr, core.ReasonDone, true
			}
		} else if featureErr < minLowerBound {
			minLowerBound = featureErr
		}
	}

	// Step 8: close the node.
	upd := e.cache.UpdateNode(idx)
	reason := core.ReasonDone
	switch {
	case timedOut:
		upd.UpperBound(core.Infinity)
		reason = e.timeReason()
	case pruned:
		upd.UpperBound(core.Infinity)
		reason = core.ReasonRuleReason
	default:
		upd.Optimal(true).UpperBound(upperBound)
		// Every candidate was examined, so a still-infinite error proves
		// no subtree beats the bound: lift the lower bound accordingly.
		// After a pruned or interrupted pass the same inference would
		// overstate the bound and block the promised re-expansion.
		if math.IsInf(entry.Error, 1) {
			lb := math.Max(entry.LowerBound, math.Max(minLowerBound, upperBound))
			upd.LowerBound(lb)
		}
	}

	return entry.Error, reason, true
}

// exploreChild pushes one branch literal, seeds or reuses its cache
// entry, recurses, and unwinds the cover, keeping the trail balanced
// with the recursion.
func (e *Engine) exploreChild(
	c *cover.Cover,
	path *[]core.Item,
	nodeCands []core.Item,
	depth int,
	item core.Item,
	branchLB float64,
	childSim *similarityCover,
	childCtx searchCtx,
	ub float64,
) (float64, core.Reason, cache.Index) {
	*path = append(*path, item)
	childIdx, isNew := e.cache.Insert(*path)
	if isNew {
		size := c.BranchOn(item)
		leafErr, out := e.errFn.Leaf(c)
		e.cache.UpdateNode(childIdx).LeafError(leafErr).Output(out).Size(size)
	} else {
		e.stats.CacheHits++
	}
	if child := e.cache.Node(childIdx); branchLB > child.LowerBound {
		e.cache.UpdateNode(childIdx).LowerBound(branchLB)
	}

	errVal, reason, intersected := e.recurse(c, *path, nodeCands, depth+1, item, childIdx, isNew, childSim, childCtx, ub)

	// Unwind. Similarity bookkeeping needs the child cover live, so an
	// uncommitted branch is committed just for the snapshot; without
	// similarity the pop only happens when something was pushed.
	committed := isNew || intersected
	if e.simRule.State() == core.RuleActive {
		if !committed {
			c.BranchOn(item)
			committed = true
		}
		// Only a proven-optimal error makes an admissible similarity
		// bound: a best-so-far value could overshoot the sibling's true
		// optimum and prune it wrongly.
		if child := e.cache.Node(childIdx); reason != core.ReasonLowerBoundConstrained && child.IsOptimal {
			childSim.update(c, child.Error)
		}
	}
	if committed {
		c.Backtrack()
	}
	*path = (*path)[:len(*path)-1]

	return errVal, reason, childIdx
}

// filterCandidates drops the parent attribute and every attribute whose
// either branch falls below min-support on the current cover.
func (e *Engine) filterCandidates(c *cover.Cover, candidates []core.Item, parentItem core.Item, support int) []core.Item {
	out := make([]core.Item, 0, len(candidates))
	parentAttr := -1
	if parentItem != core.NoItem {
		parentAttr = parentItem.Attribute()
	}
	for _, cand := range candidates {
		a := cand.Attribute()
		if a == parentAttr {
			continue
		}
		right := c.CountIfBranchOn(core.MakeItem(a, 1))
		if right < e.cfg.MinSupport || support-right < e.cfg.MinSupport {
			continue
		}
		out = append(out, cand)
	}

	return out
}

// branchingChoice picks which of the two child literals to explore
// first: value 0 under the default policy, the
// smaller-lower-bound branch under dynamic branching, with similarity
// lifts folded in when enabled. Equal bounds fall back to value 0,
// keeping the order deterministic.
func (e *Engine) branchingChoice(c *cover.Cover, path []core.Item, attr int, childSim *similarityCover) (int, float64, float64) {
	var lbs [2]float64
	if e.cfg.BranchingPolicy == core.BranchingDynamic {
		for v := 0; v < 2; v++ {
			if idx, ok := e.cache.Lookup(append(path, core.MakeItem(attr, v))); ok {
				n := e.cache.Node(idx)
				if !math.IsInf(n.Error, 1) {
					lbs[v] = n.Error
				} else {
					lbs[v] = n.LowerBound
				}
			}
		}
		if e.simRule.State() == core.RuleActive {
			for v := 0; v < 2; v++ {
				c.BranchOn(core.MakeItem(attr, v))
				if b := childSim.bound(c); b > lbs[v] {
					lbs[v] = b
				}
				c.Backtrack()
			}
		}
	}
	first := 0
	if lbs[0] > lbs[1] {
		first = 1
	}

	return first, lbs[first], lbs[1-first]
}

// applyDepth2 hands the remaining depth <= 2 subproblem to the terminal
// solver and caches the resulting subtree entry-by-entry. ok is false
// when the solver found no candidates and the general recursion should
// continue.
func (e *Engine) applyDepth2(c *cover.Cover, path []core.Item, idx cache.Index, depth int, upperBound float64, candidates []core.Item) (float64, core.Reason, bool) {
	entry := e.cache.Node(idx)
	if upperBound < entry.LowerBound {
		return entry.Error, core.ReasonLowerBoundConstrained, true
	}

	t, err := e.d2.Fit(e.cfg.MinSupport, e.cfg.MaxDepth-depth, c, candidates)
	if err != nil {
		return 0, core.ReasonNone, false
	}
	e.cacheSubtree(path, idx, t, 0, upperBound)

	return t.RootError(), core.ReasonFromSpecializedAlgorithm, true
}

// cacheSubtree walks a solver-produced tree and mirrors it into the
// cache, marking every node optimal under the bound in force.
func (e *Engine) cacheSubtree(path []core.Item, idx cache.Index, t *tree.Tree, treeIdx int, upperBound float64) {
	node := t.Node(treeIdx)
	if node == nil {
		return
	}
	upd := e.cache.UpdateNode(idx)
	upd.Error(node.Value.Error).Optimal(true).UpperBound(upperBound)
	if node.Value.Test == nil || node.IsLeaf() {
		out := cache.Unset
		if node.Value.Out != nil {
			out = *node.Value.Out
		}
		upd.LeafError(node.Value.Error).Output(out).Leaf(true)

		return
	}
	upd.Test(*node.Value.Test).Leaf(false)

	for v, childTree := range [2]int{node.Left, node.Right} {
		if childTree == tree.NoChild {
			continue
		}
		it := core.MakeItem(*node.Value.Test, v)
		childPath := append(path, it)
		childIdx, _ := e.cache.Insert(childPath)
		e.cacheSubtree(childPath, childIdx, t, childTree, upperBound)
	}
}
