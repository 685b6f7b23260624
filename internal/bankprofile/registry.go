package bankprofile

import (
	"sync/atomic"

	"github.com/bankstate/statement-engine/internal/models"
)

// Registry is the immutable set of loaded profiles. Lookups are read-only;
// a reload replaces the whole table atomically, never mutates in place.
type Registry struct {
	profiles []*Profile
	byCode   map[string]*Profile
}

var current atomic.Pointer[Registry]

func init() {
	current.Store(NewRegistry(builtinProfiles()))
}

// Default returns the process-wide registry loaded at startup.
func Default() *Registry {
	return current.Load()
}

// Swap atomically replaces the process-wide registry. Intended for hot
// reload; callers holding the old registry keep a consistent snapshot.
func Swap(r *Registry) {
	current.Store(r)
}

// NewRegistry builds a registry from a profile list.
func NewRegistry(profiles []*Profile) *Registry {
	byCode := make(map[string]*Profile, len(profiles))
	for _, p := range profiles {
		byCode[p.Code] = p
	}
	return &Registry{profiles: profiles, byCode: byCode}
}

// All returns the loaded profiles in registration order.
func (r *Registry) All() []*Profile {
	return r.profiles
}

// Lookup returns the profile for an issuer code, or nil.
func (r *Registry) Lookup(code string) *Profile {
	return r.byCode[code]
}

// Generic returns the fallback profile used when detection cannot identify
// an issuer. Extraction still proceeds best-effort with it.
func (r *Registry) Generic() *Profile {
	if p := r.byCode[models.BankUnknown]; p != nil {
		return p
	}
	return genericProfile()
}

// Nigerian retail banks. Date formats and separators follow the layouts
// each issuer has used in recent statement templates.
func builtinProfiles() []*Profile {
	ngn := func(formats ...string) LocaleHints {
		return LocaleHints{
			DateFormats:  formats,
			DecimalSep:   ".",
			ThousandsSep: ",",
			Currency:     "NGN",
		}
	}

	return []*Profile{
		{
			Code:        "gtbank",
			DisplayName: "GTBank (Guaranty Trust Bank)",
			Signatures: []Signature{
				sig("name-full", `guaranty\s*trust\s*bank`, 0.5),
				sig("name-short", `gtbank`, 0.3),
				sig("name-abbrev", `\bgtb\b`, 0.2),
			},
			Archetype:       models.LayoutTextTable,
			RequiredColumns: 5,
			Locale:          ngn("02/01/2006", "02-01-2006", "2006-01-02"),
		},
		{
			Code:        "access_bank",
			DisplayName: "Access Bank",
			Signatures: []Signature{
				sig("name-full", `access\s*bank`, 0.6),
				sig("name-joined", `accessbank`, 0.4),
			},
			Archetype:       models.LayoutTextTable,
			RequiredColumns: 6,
			Locale:          ngn("02/01/2006", "02-Jan-2006"),
		},
		{
			Code:        "zenith_bank",
			DisplayName: "Zenith Bank",
			Signatures: []Signature{
				sig("name-full", `zenith\s*bank`, 0.6),
				sig("name-joined", `zenithbank`, 0.4),
			},
			Archetype:       models.LayoutTextTable,
			RequiredColumns: 6,
			Locale:          ngn("02/01/2006", "02-01-2006"),
		},
		{
			Code:        "uba",
			DisplayName: "United Bank for Africa (UBA)",
			Signatures: []Signature{
				sig("name-full", `united\s*bank\s*for\s*africa`, 0.6),
				sig("name-abbrev", `\buba\b`, 0.4),
			},
			Archetype:       models.LayoutGrid,
			RequiredColumns: 5,
			Locale:          ngn("02/01/2006", "2006-01-02"),
		},
		{
			Code:        "first_bank",
			DisplayName: "First Bank of Nigeria",
			Signatures: []Signature{
				sig("name-full", `first\s*bank`, 0.6),
				sig("name-joined", `firstbank`, 0.4),
			},
			Archetype:       models.LayoutTextTable,
			RequiredColumns: 6,
			Locale:          ngn("02/01/2006", "02-Jan-2006"),
		},
		{
			Code:        "stanbic_ibtc",
			DisplayName: "Stanbic IBTC Bank",
			Signatures: []Signature{
				sig("name-full", `stanbic\s*ibtc`, 0.6),
				sig("name-joined", `stanbicibtc`, 0.4),
			},
			Archetype:       models.LayoutGrid,
			RequiredColumns: 5,
			Locale:          ngn("2006-01-02", "02/01/2006"),
		},
		{
			Code:        "fidelity_bank",
			DisplayName: "Fidelity Bank",
			Signatures: []Signature{
				sig("name-full", `fidelity\s*bank`, 0.6),
				sig("name-joined", `fidelitybank`, 0.4),
			},
			Archetype:       models.LayoutTextTable,
			RequiredColumns: 6,
			Locale:          ngn("02/01/2006", "02-01-2006"),
		},
		{
			Code:        "union_bank",
			DisplayName: "Union Bank of Nigeria",
			Signatures: []Signature{
				sig("name-full", `union\s*bank`, 0.6),
				sig("name-joined", `unionbank`, 0.4),
			},
			Archetype:       models.LayoutTextTable,
			RequiredColumns: 6,
			Locale:          ngn("02/01/2006", "02-Jan-2006"),
		},
		genericProfile(),
	}
}

// genericProfile is the catch-all used for unknown issuers: a wide fallback
// date list and common separators so best-effort extraction can proceed.
func genericProfile() *Profile {
	return &Profile{
		Code:            models.BankUnknown,
		DisplayName:     "Unknown Bank",
		Archetype:       models.LayoutGeneric,
		RequiredColumns: 3,
		Locale: LocaleHints{
			DateFormats:  []string{"02/01/2006", "2006-01-02", "02-Jan-2006", "02-01-2006"},
			DecimalSep:   ".",
			ThousandsSep: ",",
			Currency:     "NGN",
		},
	}
}
