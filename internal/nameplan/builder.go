package nameplan

import (
	"regexp"
	"strings"

	"github.com/JPK85/patentpack/internal/orgnorm"
	"github.com/JPK85/patentpack/internal/probecache"
)

// designatorTokens enumerates the corporate-suffix designators that qualify
// a generated expansion as worth sending to a provider. Distinct from (and
// more exhaustive than) orgnorm's own suffix tables, since here we are
// filtering free-form expansion strings rather than stemming them.
var designatorTokens = map[string]struct{}{
	"inc": {}, "incorporated": {}, "corp": {}, "corporation": {}, "co": {}, "company": {},
	"ltd": {}, "limited": {}, "plc": {}, "llc": {}, "lp": {}, "llp": {}, "l.p.": {}, "l.l.p": {}, "lllp": {},
	"gmbh": {}, "ag": {}, "kg": {}, "kgaa": {}, "mbh": {},
	"sa": {}, "s.a.": {}, "sociedad anonima": {}, "sas": {}, "sasl": {}, "sasu": {}, "sarl": {}, "s.a.r.l": {},
	"spa": {}, "s.p.a.": {}, "sapa": {}, "s.a.p.a": {},
	"srl": {}, "s.r.l": {}, "sl": {}, "s.l.": {}, "slu": {}, "s.l.u.": {},
	"lda": {}, "l.da": {}, "ltda": {}, "limitada": {},
	"nv": {}, "bv": {}, "bvba": {}, "cv": {}, "cvba": {}, "se": {}, "verein": {}, "ag & co": {}, "ag&co": {},
	"oy": {}, "oyj": {}, "ab": {}, "as": {}, "asa": {}, "a/s": {},
	"kk": {}, "kabushiki kaisha": {}, "kabushiki-gaisha": {}, "godo kaisha": {}, "g.k.": {},
	"sdn bhd": {}, "pte ltd": {}, "private limited": {},
	"co ltd": {}, "co., ltd.": {}, "pte. ltd.": {}, "pteltd": {}, "co.,ltd.": {},
	"pty ltd": {}, "proprietary limited": {}, "pty. ltd.": {}, "ptyltd": {},
	"zrt": {}, "rt": {}, "oao": {}, "zao": {}, "ooo": {}, "ao": {}, "pa": {},
}

var internalDotRE = regexp.MustCompile(`\.`)

// normalizeDesignatorToken lowers, trims outer punctuation, and drops
// internal dots so "S.p.A." and "spa" compare equal.
func normalizeDesignatorToken(tok string) string {
	t := strings.Trim(tok, " ,\"'()[]{}")
	t = strings.ToLower(t)
	return internalDotRE.ReplaceAllString(t, "")
}

func hasDesignator(name string) bool {
	for _, tok := range strings.Fields(name) {
		if _, ok := designatorTokens[normalizeDesignatorToken(tok)]; ok {
			return true
		}
	}
	return false
}

func squashWS(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// planBuilder accumulates VariantItems with seen-name deduplication.
type planBuilder struct {
	out  []VariantItem
	seen map[string]struct{}
}

func newPlanBuilder() *planBuilder {
	return &planBuilder{seen: make(map[string]struct{})}
}

func (b *planBuilder) push(name string, bucket Bucket, kind Kind) {
	nv := squashWS(name)
	if nv == "" {
		return
	}
	if _, ok := b.seen[nv]; ok {
		return
	}
	b.seen[nv] = struct{}{}
	b.out = append(b.out, VariantItem{Name: nv, Bucket: bucket, Kind: kind})
}

// addUCVariant adds the upper-cased form of name to the same bucket and
// with the same kind as name, unless it duplicates a variant already
// recorded, or is identical to name's own squashed form (in which case it
// is only marked seen).
func (b *planBuilder) addUCVariant(name string, bucket Bucket, kind Kind) {
	uc := squashWS(strings.ToUpper(name))
	if uc == "" {
		return
	}
	if _, ok := b.seen[uc]; ok {
		return
	}
	if uc == squashWS(name) {
		b.seen[uc] = struct{}{}
		return
	}
	b.seen[uc] = struct{}{}
	b.out = append(b.out, VariantItem{Name: uc, Bucket: bucket, Kind: kind})
}

// BuildBucketedVariantsInput supplies the seed names a plan is built from.
type BuildBucketedVariantsInput struct {
	BaseName        string
	GleifLegal      string
	GleifOtherNames []string
	Subsidiaries    []string

	IncludeExpansions bool
	MaxVariants       int
}

// BuildBucketedVariants builds the ordered variant list for a single
// organization: every seed (original, registry legal name, registry
// "other" names, subsidiary names) each immediately followed by its
// upper-case form, in that bucket order, followed — when
// IncludeExpansions is set — by designator-filtered expansions of each
// seed, grouped by their originating bucket.
func BuildBucketedVariants(in BuildBucketedVariantsInput) []VariantItem {
	b := newPlanBuilder()

	if in.BaseName != "" {
		b.push(in.BaseName, BucketOrig, KindSeed)
		b.addUCVariant(in.BaseName, BucketOrig, KindSeed)
	}

	if in.GleifLegal != "" {
		b.push(in.GleifLegal, BucketGleifLegal, KindSeed)
		b.addUCVariant(in.GleifLegal, BucketGleifLegal, KindSeed)
	}

	for _, nm := range in.GleifOtherNames {
		if nm == "" {
			continue
		}
		b.push(nm, BucketGleifOther, KindSeed)
		b.addUCVariant(nm, BucketGleifOther, KindSeed)
	}

	for _, sub := range in.Subsidiaries {
		if sub == "" {
			continue
		}
		b.push(sub, BucketGleifSub, KindSeed)
		b.addUCVariant(sub, BucketGleifSub, KindSeed)
	}

	if in.IncludeExpansions {
		expandMany := func(seed string, bucket Bucket) {
			for _, v := range orgnorm.ExpandQueryVariants(seed) {
				if v == "" {
					continue
				}
				if squashWS(v) == squashWS(seed) {
					continue
				}
				if !hasDesignator(v) {
					continue
				}
				b.push(v, bucket, KindExpand)
				b.addUCVariant(v, bucket, KindExpand)
			}
		}

		if in.GleifLegal != "" {
			expandMany(squashWS(in.GleifLegal), BucketExpandLegal)
		}
		for _, nm := range in.GleifOtherNames {
			if nm != "" {
				expandMany(squashWS(nm), BucketExpandOther)
			}
		}
		if in.BaseName != "" {
			expandMany(squashWS(in.BaseName), BucketExpandOrig)
		}
		for _, sub := range in.Subsidiaries {
			if sub != "" {
				expandMany(squashWS(sub), BucketExpandSub)
			}
		}
	}

	if in.MaxVariants > 0 && len(b.out) > in.MaxVariants {
		return b.out[:in.MaxVariants]
	}
	return b.out
}

// BuildCacheAwareVariantsInput extends BuildBucketedVariantsInput with the
// probe cache and the provider/year the plan is being built for.
type BuildCacheAwareVariantsInput struct {
	BuildBucketedVariantsInput
	Cache        *probecache.Cache
	ProviderName string
	Year         int
}

// BuildCacheAwareVariants checks whether the original name already has a
// known discovery hit in cache; if so, it short-circuits to a single-entry
// plan rather than re-generating the full bucketed/expanded set. Otherwise
// it falls back to BuildBucketedVariants.
func BuildCacheAwareVariants(in BuildCacheAwareVariantsInput) []VariantItem {
	if in.Cache == nil {
		return BuildBucketedVariants(in.BuildBucketedVariantsInput)
	}

	origKey := probecache.CacheKey{
		Provider: in.ProviderName,
		Year:     in.Year,
		Op:       "discover",
		Key:      in.BaseName,
	}

	if in.Cache.HasHits(origKey) {
		return []VariantItem{{Name: in.BaseName, Bucket: BucketOrig, Kind: KindSeed}}
	}

	return BuildBucketedVariants(in.BuildBucketedVariantsInput)
}
