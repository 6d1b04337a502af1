package replay

// Entry holds the recorded answer(s) for one canonical template:
// either a single scalar answer or an ordered map of verbatim
// question to answer for templates asked once per item.
type Entry struct {
	Grouped bool
	Scalar  string
	values  map[string]string
	keys    []string
}

// Get returns the answer stored under the verbatim question.
func (e *Entry) Get(question string) (string, bool) {
	if e.Grouped {
		v, ok := e.values[Normalize(question)]
		return v, ok
	}
	if e.Scalar == "" {
		return "", false
	}
	return e.Scalar, true
}

// Set records an answer. For grouped entries the verbatim question is
// the map key; insertion order is preserved for regeneration.
func (e *Entry) Set(question, answer string) {
	if !e.Grouped {
		e.Scalar = answer
		return
	}
	q := Normalize(question)
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if _, exists := e.values[q]; !exists {
		e.keys = append(e.keys, q)
	}
	e.values[q] = answer
}

// Keys returns the verbatim questions of a grouped entry in insertion
// order. Scalar entries return nil.
func (e *Entry) Keys() []string {
	return e.keys
}

// Section is one category block: canonical template text to entry,
// with the template order preserved.
type Section struct {
	entries map[string]*Entry
	order   []string
}

func newSection() *Section {
	return &Section{entries: make(map[string]*Entry)}
}

func (s *Section) add(text string, grouped bool) *Entry {
	e := &Entry{Grouped: grouped}
	s.entries[text] = e
	s.order = append(s.order, text)
	return e
}

// Entry returns the entry for a canonical template text, creating a
// scalar one if the template is unknown to the skeleton.
func (s *Section) Entry(text string) *Entry {
	if e, ok := s.entries[text]; ok {
		return e
	}
	return s.add(text, false)
}

// Templates returns the canonical template texts in section order.
func (s *Section) Templates() []string {
	return s.order
}

func (s *Section) has(text string) bool {
	_, ok := s.entries[text]
	return ok
}

// Store is the structured configuration tree: category to canonical
// template to entry. A fresh store carries the complete skeleton for
// its mode so lookups never need existence checks; loading a prior
// file merges into the skeleton rather than replacing it.
type Store struct {
	mode     Mode
	sections map[Category]*Section
	order    []Category
}

// NewStore builds the default skeleton for a workflow mode.
func NewStore(mode Mode) *Store {
	s := &Store{mode: mode, sections: make(map[Category]*Section)}
	for _, t := range skeleton(mode) {
		s.section(t.Category).add(t.Text, t.Grouped)
	}
	return s
}

func skeleton(mode Mode) []Template {
	if mode == ModeSRA {
		return []Template{
			{CatConfigFile, TmplConfigOverwrite, false},
			{CatOutputOverwrite, TmplFileOverwrite, false},
			{CatAssaySelection, TmplAssayScope, false},
			{CatAssaySelection, TmplAssaySelected, false},
			{CatLibraryFields, TmplLibraryDefault, true},
			{CatLibraryFields, TmplLibraryValue, true},
			{CatPlatformValues, TmplAssayOrProject, true},
			{CatPlatformValues, TmplPlatformValue, true},
			{CatInstrumentModel, TmplAssayOrProject, true},
			{CatInstrumentModel, TmplInstrumentAdd, true},
			{CatInstrumentModel, TmplInstrumentValue, true},
		}
	}
	return []Template{
		{CatConfigFile, TmplConfigOverwrite, false},
		{CatOutputOverwrite, TmplFileOverwrite, false},
		{CatBioproject, TmplBioprojectManual, false},
		{CatBioproject, TmplBioprojectSame, false},
		{CatBioproject, TmplBioprojectValue, false},
		{CatBioproject, TmplBioprojectGroupBy, false},
		{CatBioproject, TmplBioprojectPerGroup, true},
		{CatMandatoryFields, TmplMandatoryFill, true},
		{CatNumericalUnits, TmplUnitForColumn, true},
		{CatDuplicateRows, TmplDupAddColumn, false},
		{CatDuplicateRows, TmplDupResolveBy, false},
		{CatDuplicateRows, TmplDupRename, false},
		{CatDuplicateRows, TmplDupNewName, false},
		{CatDuplicateRows, TmplDupColumnPick, false},
		{CatDuplicateRows, TmplDupContinue, false},
		{CatSampleTitle, TmplTitleWanted, false},
		{CatSampleTitle, TmplTitleDefaults, false},
		{CatSampleTitle, TmplTitleColumns, false},
		{CatSampleTitle, TmplTitleConcat, false},
		{CatAdditionalColumns, TmplAddAllColumns, false},
		{CatAdditionalColumns, TmplExcludeColumns, false},
		{CatAdditionalColumns, TmplExcludeNone, false},
		{CatAdditionalColumns, TmplColumnsExcluded, false},
	}
}

// Mode returns the workflow mode the store was built for.
func (s *Store) Mode() Mode {
	return s.mode
}

func (s *Store) section(cat Category) *Section {
	if sec, ok := s.sections[cat]; ok {
		return sec
	}
	sec := newSection()
	s.sections[cat] = sec
	s.order = append(s.order, cat)
	return sec
}

// Section returns the section for a category, creating an empty one
// for categories unknown to the skeleton.
func (s *Store) Section(cat Category) *Section {
	return s.section(cat)
}

// Categories returns the category names in tree order.
func (s *Store) Categories() []Category {
	return s.order
}

// Lookup returns the saved answer for a verbatim question under a
// canonical template. Empty answers count as absent, so a replayed
// run re-asks questions the user previously skipped.
func (s *Store) Lookup(t Template, question string) (string, bool) {
	sec, ok := s.sections[t.Category]
	if !ok {
		return "", false
	}
	e, ok := sec.entries[t.Text]
	if !ok {
		return "", false
	}
	answer, ok := e.Get(question)
	if !ok || answer == "" {
		return "", false
	}
	return answer, true
}

// Set records an answer under a canonical template.
func (s *Store) Set(t Template, question, answer string) {
	sec := s.section(t.Category)
	e, ok := sec.entries[t.Text]
	if !ok {
		e = sec.add(t.Text, t.Grouped)
	}
	e.Set(question, answer)
}

// LoadedSection is the untyped form of one category block as read
// from disk, before merging into a skeleton.
type LoadedSection struct {
	Category Category
	Entries  []LoadedEntry
}

// LoadedEntry is one template key from a loaded file. Mapped entries
// carry question/answer pairs in file order.
type LoadedEntry struct {
	Text   string
	Mapped bool
	Scalar string
	Pairs  []QA
}

// QA is a verbatim question/answer pair.
type QA struct {
	Question string
	Answer   string
}

// Merge overlays loaded sections onto the skeleton. Map entries merge
// key-by-key with loaded values winning; scalar entries replace the
// skeleton value wholesale. Categories and templates the skeleton
// does not know are preserved verbatim so older files with custom
// keys are never silently dropped.
func (s *Store) Merge(loaded []LoadedSection) {
	for _, ls := range loaded {
		sec := s.section(ls.Category)
		for _, le := range ls.Entries {
			e, ok := sec.entries[le.Text]
			if !ok {
				e = sec.add(le.Text, le.Mapped)
			}
			if le.Mapped && e.Grouped {
				for _, qa := range le.Pairs {
					e.Set(qa.Question, qa.Answer)
				}
				continue
			}
			if le.Mapped {
				// Shape mismatch against the skeleton: the loaded
				// map wins wholesale.
				e.Grouped = true
				e.Scalar = ""
				e.values = nil
				e.keys = nil
				for _, qa := range le.Pairs {
					e.Set(qa.Question, qa.Answer)
				}
				continue
			}
			if e.Grouped && le.Scalar == "" {
				// An empty grouped entry serializes as a bare key
				// and loads back as a null scalar; keep the map.
				continue
			}
			e.Grouped = false
			e.Scalar = le.Scalar
		}
	}
}
