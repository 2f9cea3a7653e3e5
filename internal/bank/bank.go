package bank

// QuestionType enumerates the four question kinds the extraction
// pipeline produces.
type QuestionType string

const (
	TypeSingle   QuestionType = "single"
	TypeMultiple QuestionType = "multiple"
	TypeJudge    QuestionType = "judge"
	TypeBlank    QuestionType = "blank"
)

// Question is one item of a bank, read-only to the rest of the app.
// Options are keyed by single-letter label; blank questions have none.
// Answer is a letter for single/judge, a letter set like "ABD" for
// multiple, and free text for blank.
type Question struct {
	ID          string            `json:"id"`
	Type        QuestionType      `json:"type"`
	Stem        string            `json:"stem"`
	Options     map[string]string `json:"options,omitempty"`
	Answer      string            `json:"answer,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
	Difficulty  string            `json:"difficulty,omitempty"`
}

// Info describes one bank as listed in the manifest.
type Info struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Count         int    `json:"count"`
	QuestionsPath string `json:"questionsPath"`
	SourceFile    string `json:"sourceFile,omitempty"`
}

// Manifest is the index the bank builder writes next to the per-bank
// question files.
type Manifest struct {
	Meta  ManifestMeta `json:"meta"`
	Banks []Info       `json:"banks"`
}

// ManifestMeta carries manifest-level counters.
type ManifestMeta struct {
	Count int `json:"count"`
}

// File is the per-bank question file layout.
type File struct {
	Meta      FileMeta   `json:"meta"`
	Questions []Question `json:"questions"`
}

// FileMeta describes the provenance of a question file.
type FileMeta struct {
	BankID   string `json:"bankId,omitempty"`
	BankName string `json:"bankName,omitempty"`
	Source   string `json:"source,omitempty"`
	Count    int    `json:"count,omitempty"`
}

// IDs returns the ordered question id list of a file. Order defines
// the "all" sequence and is significant.
func (f *File) IDs() []string {
	ids := make([]string, 0, len(f.Questions))
	for _, q := range f.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

// ByID builds an id -> question index for lookup during a drill.
func (f *File) ByID() map[string]*Question {
	m := make(map[string]*Question, len(f.Questions))
	for i := range f.Questions {
		m[f.Questions[i].ID] = &f.Questions[i]
	}
	return m
}
