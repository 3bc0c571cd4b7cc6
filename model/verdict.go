package model

import "fmt"

type Verdict int

const (
	VerdictApproved Verdict = iota + 1
	VerdictReviewing
	VerdictRejected
)

func ParseVerdict(code string) (Verdict, bool) {
	switch code {
	case "approved":
		return VerdictApproved, true
	case "reviewing":
		return VerdictReviewing, true
	case "rejected":
		return VerdictRejected, true
	}
	return 0, false
}

func (v Verdict) String() string {
	switch v {
	case VerdictApproved:
		return "approved"
	case VerdictReviewing:
		return "reviewing"
	case VerdictRejected:
		return "rejected"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

func (v Verdict) Sentence() string {
	switch v {
	case VerdictApproved:
		return "Работа проверена: ревьюеру всё понравилось. Ура!"
	case VerdictReviewing:
		return "Работа взята на проверку ревьюером."
	case VerdictRejected:
		return "Работа проверена: у ревьюера есть замечания."
	}
	return ""
}

// RenderStatus builds the chat message for a homework record.
func RenderStatus(hw Homework) (string, error) {
	status, ok := hw.Status()
	if !ok {
		return "", NewError(KindMalformedResponse, "homework has no status key", ErrMissingKey)
	}
	name, ok := hw.Name()
	if !ok {
		return "", NewError(KindMalformedResponse, "homework has no homework_name key", ErrMissingKey)
	}
	verdict, ok := ParseVerdict(status)
	if !ok {
		return "", NewError(KindUnrecognizedStatus, fmt.Sprintf("undocumented homework status %q", status), nil)
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict.Sentence()), nil
}
