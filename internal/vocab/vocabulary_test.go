package vocab

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func builtinVocabulary(t *testing.T) *Vocabulary {
	t.Helper()
	set := Builtin()
	return New(set.Version, set.Markers, discardLogger())
}

func TestBuiltinHasOnlyKnownConflicts(t *testing.T) {
	v := builtinVocabulary(t)
	// "NRBC %" and "NRBC #" only differ in punctuation; both still resolve
	// exactly.
	want := []Conflict{{Kind: ConflictAlnum, Alias: "nrbc #", KeptID: "NRBC_PCT", DroppedID: "NRBC_ABS"}}
	if c := v.Conflicts(); len(c) != 1 || c[0] != want[0] {
		t.Fatalf("expected only %+v in builtin table, got %+v", want, c)
	}
	if d, ok := v.LookupAlias("NRBC #"); !ok || d.ID != "NRBC_ABS" {
		t.Errorf("expected NRBC # to resolve to NRBC_ABS, got %v", d)
	}
	if v.Len() != len(Builtin().Markers) {
		t.Errorf("expected %d markers, got %d (duplicate ids?)", len(Builtin().Markers), v.Len())
	}
	if v.Version() != BuiltinVersion {
		t.Errorf("expected version %s, got %s", BuiltinVersion, v.Version())
	}
}

func TestBuiltinWeightsInRange(t *testing.T) {
	for _, d := range Builtin().Markers {
		if d.ToxicityWeight < MinWeight || d.ToxicityWeight > MaxWeight {
			t.Errorf("%s: toxicity weight %f out of range", d.ID, d.ToxicityWeight)
		}
		for dom, w := range d.Domains {
			if _, ok := ParseDomain(string(dom)); !ok {
				t.Errorf("%s: unknown domain %q", d.ID, dom)
			}
			if w < MinWeight || w > MaxWeight {
				t.Errorf("%s: domain %s weight %f out of range", d.ID, dom, w)
			}
		}
	}
}

func TestBuiltinReturnsFreshCopy(t *testing.T) {
	a := Builtin()
	a.Markers[0].Aliases[0] = "mutated"
	a.Markers[0].Domains[DomainPFAS] = 10

	b := Builtin()
	if b.Markers[0].Aliases[0] == "mutated" {
		t.Error("builtin aliases shared between calls")
	}
	if b.Markers[0].Domains[DomainPFAS] == 10 {
		t.Error("builtin domains shared between calls")
	}
}

func TestAliasCollisionFirstRegisteredWins(t *testing.T) {
	defs := []MarkerDefinition{
		{ID: "TG", Name: "Tiglylglycine", Aliases: []string{"tg"}},
		{ID: "TRIG", Name: "Triglycerides", Aliases: []string{"TG"}},
	}
	for i := 0; i < 10; i++ {
		v := New("test", defs, discardLogger())
		d, ok := v.LookupAlias("tg")
		if !ok {
			t.Fatal("expected tg to resolve")
		}
		if d.ID != "TG" {
			t.Fatalf("run %d: expected TG, got %s", i, d.ID)
		}
		conflicts := v.Conflicts()
		if len(conflicts) != 1 {
			t.Fatalf("expected 1 conflict, got %d", len(conflicts))
		}
		if conflicts[0] != (Conflict{Kind: ConflictAlias, Alias: "tg", KeptID: "TG", DroppedID: "TRIG"}) {
			t.Errorf("unexpected conflict record: %+v", conflicts[0])
		}
	}
}

func TestAlnumKeyCollisionIsRecorded(t *testing.T) {
	defs := []MarkerDefinition{
		{ID: "PGF2A", Name: "PGF2α"},
		{ID: "PGF2A_ALT", Name: "PGF-2a"},
		{ID: "SAME", Name: "Cortisol", Aliases: []string{"cortisol (am)", "cortisol-am"}},
	}
	v := New("test", defs, discardLogger())

	conflicts := v.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", conflicts)
	}
	want := Conflict{Kind: ConflictAlnum, Alias: "pgf-2a", KeptID: "PGF2A", DroppedID: "PGF2A_ALT"}
	if conflicts[0] != want {
		t.Errorf("expected %+v, got %+v", want, conflicts[0])
	}
	if d, ok := v.LookupAlnum(AlnumKey("pgf 2 a")); !ok || d.ID != "PGF2A" {
		t.Errorf("expected alnum lookup to keep the first marker, got %v", d)
	}
	if d, ok := v.LookupAlias("PGF-2a"); !ok || d.ID != "PGF2A_ALT" {
		t.Errorf("expected exact alias to still reach the second marker, got %v", d)
	}
}

func TestLookupAliasIsCaseAndWhitespaceInsensitive(t *testing.T) {
	v := builtinVocabulary(t)
	cases := []struct {
		in   string
		want string
	}{
		{"aflatoxin b1", "AFB1"},
		{"AFLATOXIN B1", "AFB1"},
		{"  Aflatoxin \t  B1 ", "AFB1"},
		{"Perfluorooctanoic Acid", "PFOA"},
		{"mono-(2-ethylhexyl) phthalate", "MEHP"},
	}
	for _, tc := range cases {
		d, ok := v.LookupAlias(tc.in)
		if !ok {
			t.Errorf("%q: expected a match", tc.in)
			continue
		}
		if d.ID != tc.want {
			t.Errorf("%q: expected %s, got %s", tc.in, tc.want, d.ID)
		}
	}

	if _, ok := v.LookupAlias("aflatoxin"); ok {
		t.Error("LookupAlias must be exact only")
	}
}

func TestAliasesFollowDeclarationOrder(t *testing.T) {
	defs := []MarkerDefinition{
		{ID: "B", Name: "Beta", Aliases: []string{"b-one", "b-two"}},
		{ID: "A", Name: "Alpha", Aliases: []string{"a-one"}},
	}
	v := New("test", defs, discardLogger())
	got := v.Aliases()
	want := []AliasEntry{
		{"beta", "B"}, {"b-one", "B"}, {"b-two", "B"},
		{"alpha", "A"}, {"a-one", "A"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d aliases, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestDuplicateMarkerIDIgnored(t *testing.T) {
	defs := []MarkerDefinition{
		{ID: "LEAD", Name: "Lead", ToxicityWeight: 9},
		{ID: "LEAD", Name: "Plumbum", ToxicityWeight: 1},
	}
	v := New("test", defs, discardLogger())
	if v.Len() != 1 {
		t.Fatalf("expected 1 marker, got %d", v.Len())
	}
	d, _ := v.Marker("LEAD")
	if d.ToxicityWeight != 9 {
		t.Errorf("expected first definition to win, got weight %f", d.ToxicityWeight)
	}
	if _, ok := v.LookupAlias("plumbum"); ok {
		t.Error("aliases of an ignored duplicate must not be indexed")
	}
}

func TestNewClampsWeightsAndNormalizesDomains(t *testing.T) {
	defs := []MarkerDefinition{{
		ID:             "X",
		Name:           "X",
		ToxicityWeight: 14,
		Domains: map[Domain]float64{
			"voc":     -2,
			"mycotox": 12,
			"weather": 5,
		},
	}}
	v := New("test", defs, discardLogger())
	d, ok := v.Marker("X")
	if !ok {
		t.Fatal("expected marker X")
	}
	if d.ToxicityWeight != 10 {
		t.Errorf("expected toxicity clamped to 10, got %f", d.ToxicityWeight)
	}
	if d.Domains[DomainVOCs] != 0 {
		t.Errorf("expected vocs clamped to 0, got %f", d.Domains[DomainVOCs])
	}
	if d.Domains[DomainMycotoxins] != 10 {
		t.Errorf("expected mycotoxins clamped to 10, got %f", d.Domains[DomainMycotoxins])
	}
	if len(d.Domains) != 2 {
		t.Errorf("expected unknown domain dropped, got %v", d.Domains)
	}
}

func TestAlnumKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"11-β-Prostaglandin F2α", "11bprostaglandinf2a"},
		{"11b-prostaglandin f2a", "11bprostaglandinf2a"},
		{"2,4-D", "24d"},
		{"Genx/HPFO-DA", "genxhpfoda"},
		{"Crème  Brûlée", "cremebrulee"},
		{"µmol", "umol"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := AlnumKey(tc.in); got != tc.want {
			t.Errorf("AlnumKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDomain(t *testing.T) {
	if d, ok := ParseDomain(" VOC "); !ok || d != DomainVOCs {
		t.Errorf("expected voc -> vocs, got %q %v", d, ok)
	}
	if _, ok := ParseDomain("radiation"); ok {
		t.Error("expected unknown domain to be rejected")
	}
	if len(AllDomains()) != 10 {
		t.Errorf("expected 10 domains, got %d", len(AllDomains()))
	}
}

func TestFileSourceRoundTrip(t *testing.T) {
	set := MarkerSet{
		Version: "curated-7",
		Markers: []MarkerDefinition{
			{ID: "PFOA", Name: "Perfluorooctanoic Acid", ToxicityWeight: 8,
				Domains: map[Domain]float64{DomainPFAS: 9}, Aliases: []string{"pfoa", "c8"}},
		},
	}
	data, err := MarshalYAML(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "markers.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewFileSource(path).LoadMarkers(context.Background())
	if err != nil {
		t.Fatalf("LoadMarkers: %v", err)
	}
	if got.Version != "curated-7" {
		t.Errorf("expected version curated-7, got %s", got.Version)
	}
	if len(got.Markers) != 1 || got.Markers[0].Domains[DomainPFAS] != 9 {
		t.Errorf("unexpected markers: %+v", got.Markers)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")).LoadMarkers(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseYAMLDefaultsVersion(t *testing.T) {
	set, err := ParseYAML([]byte("markers:\n  - id: TG\n    name: Tiglylglycine\n    aliases: [tg]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.Version != "file" {
		t.Errorf("expected default version, got %q", set.Version)
	}
	if len(set.Markers) != 1 || set.Markers[0].Aliases[0] != "tg" {
		t.Errorf("unexpected markers: %+v", set.Markers)
	}
}
