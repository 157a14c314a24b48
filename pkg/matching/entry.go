package matching

import (
	"fmt"

	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/fact"
	"digital.vasic.correspond/pkg/ledger"
	"digital.vasic.correspond/pkg/logging"
)

// ContainsEntry checks that actual maps key to at least one value
// that corresponds to expected.
//
// When it does not, the facts say whether the key maps to other
// values or whether other keys map to corresponding values. A
// failure recorded while comparing the key's own values is the main
// cause, since any of them might have matched.
func ContainsEntry[K comparable, A, E any](
	actual *Grouping[K, A],
	key K,
	expected E,
	c correspondence.Correspondence[A, E],
	l *ledger.Ledger,
	opts ...Option,
) Outcome {
	cfg := newConfig(opts)
	before := l.Count()
	contents := entryContents(actual, key, expected, c, "expected to contain entry")

	var o Outcome
	if actual.Has(key) {
		values := actual.Values(key)
		found := false
		for _, v := range values {
			if ledger.SafeCompare(c, v, expected, l) {
				found = true
				break
			}
		}
		switch {
		case found || l.Count() > before:
			o = passOrFail(l, contents)
		default:
			facts := []fact.Fact{
				fact.New("however, it has a mapping from that key to", formatList(values)),
			}
			o = failed(CauseMismatch, append(facts, contents...), l, nil)
		}
	} else {
		var keys []K
		for _, k := range actual.Keys() {
			for _, v := range actual.Values(k) {
				if ledger.SafeCompare(c, v, expected, l) {
					keys = append(keys, k)
					break
				}
			}
		}
		var facts []fact.Fact
		if len(keys) > 0 {
			facts = append(facts, fact.New(
				"however, the following keys are mapped to such values", formatList(keys),
			))
		}
		o = failed(CauseMismatch, append(facts, contents...), l, nil)
	}

	recordEntryRun(cfg, "contains_entry", o, l.Count()-before)
	return o
}

// DoesNotContainEntry checks that actual maps key to no value that
// corresponds to expected. A failure while comparing the key's
// values fails the check, because the value that failed might have
// matched.
func DoesNotContainEntry[K comparable, A, E any](
	actual *Grouping[K, A],
	key K,
	expected E,
	c correspondence.Correspondence[A, E],
	l *ledger.Ledger,
	opts ...Option,
) Outcome {
	cfg := newConfig(opts)
	before := l.Count()
	contents := entryContents(actual, key, expected, c, "expected not to contain entry")

	var hits []A
	for _, v := range actual.Values(key) {
		if ledger.SafeCompare(c, v, expected, l) {
			hits = append(hits, v)
		}
	}

	var o Outcome
	if len(hits) > 0 {
		facts := []fact.Fact{
			fact.New("but it maps that key to the following such values", formatList(hits)),
		}
		o = failed(CauseMismatch, append(facts, contents...), l, nil)
	} else {
		o = passOrFail(l, contents)
	}

	recordEntryRun(cfg, "does_not_contain_entry", o, l.Count()-before)
	return o
}

func entryContents[K comparable, A, E any](
	actual *Grouping[K, A],
	key K,
	expected E,
	c correspondence.Correspondence[A, E],
	lead string,
) []fact.Fact {
	return []fact.Fact{
		fact.New(lead, fmt.Sprintf("%v=%v", key, expected)),
		fact.New("testing whether", "a value for that key "+c.String()+" the expected value"),
		fact.New("but was", formatList(actual.Entries())),
	}
}

func recordEntryRun(cfg config, kind string, o Outcome, failures int) {
	cfg.metrics.RecordPredicateFailures("compare", failures)
	cfg.logger.Debug("entry check completed",
		logging.StringField("kind", kind),
		logging.StringField("cause", o.Cause.String()),
		logging.IntField("failures", failures),
	)
}
