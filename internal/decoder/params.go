package decoder

// Parameters holds the decoder's tunable runtime knobs (spec.md §6). All
// fields have sane defaults via DefaultParameters; the config package is
// responsible for loading overrides from a file or environment.
type Parameters struct {
	// BeamSize bounds the number of candidates kept per span.
	BeamSize int
	// CubeSize bounds the number of pops per cube-pruning loop, i.e. the
	// maximum number of candidates admitted to a span's beam per search.
	CubeSize int
	// NBestNum bounds the size of the n-best list returned per sentence.
	NBestNum int
	// SpanThreadNum bounds the worker pool used for the per-span-length
	// parallel fan-out.
	SpanThreadNum int
	// SpanLenMax bounds the total source span (terminals plus nonterminal
	// sub-spans) a non-glue rule instance may cover.
	SpanLenMax int
	// ProbNum is the number of translation-model sub-scores every rule and
	// candidate carries.
	ProbNum int
	// DropOOV: 0 renders OOV tokens via the source vocabulary surface,
	// nonzero omits them from rendered output.
	DropOOV int
	// OOVLogProb is the pseudo-zero translation-score floor assigned to the
	// synthesized trans_probs of an OOV candidate (spec.md §9 OQ2).
	OOVLogProb float64
}

// DefaultParameters returns the parameter set used by the §8 end-to-end
// scenarios and by any caller that doesn't load its own config.
func DefaultParameters() Parameters {
	return Parameters{
		BeamSize:      100,
		CubeSize:      100,
		NBestNum:      10,
		SpanThreadNum: 1,
		SpanLenMax:    10,
		ProbNum:       1,
		DropOOV:       0,
		OOVLogProb:    0,
	}
}

// Weight is the linear feature-weight vector used by the feature scorer
// (spec.md §4.6). TransWeights has length ProbNum.
type Weight struct {
	TransWeights []float64
	LM           float64
	Len          float64
	RuleNum      float64
	Glue         float64
	FW           float64
	FWVerb       float64
}

// DefaultWeight returns an all-ones weight vector sized for n translation
// sub-scores, matching the §8 synthetic-model scenarios.
func DefaultWeight(probNum int) Weight {
	w := Weight{
		TransWeights: make([]float64, probNum),
		LM:           1,
		Len:          1,
		RuleNum:      1,
		Glue:         1,
		FW:           1,
		FWVerb:       1,
	}
	for i := range w.TransWeights {
		w.TransWeights[i] = 1
	}
	return w
}
