package rrtf

// ValidationResult contains the results of markup validation.
type ValidationResult struct {
	issues []ValidationIssue
}

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Message  string
	Position Position
	TagName  string
	Option   string
}

// Issues returns all validation issues found.
func (r *ValidationResult) Issues() []ValidationIssue {
	return r.issues
}

// Errors returns only issues with error severity.
func (r *ValidationResult) Errors() []ValidationIssue {
	return r.filter(SeverityError)
}

// Warnings returns only issues with warning severity.
func (r *ValidationResult) Warnings() []ValidationIssue {
	return r.filter(SeverityWarning)
}

// HasErrors returns true if there are any error-severity issues.
func (r *ValidationResult) HasErrors() bool {
	return len(r.filter(SeverityError)) > 0
}

// HasWarnings returns true if there are any warning-severity issues.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.filter(SeverityWarning)) > 0
}

// IsValid returns true if there are no error-severity issues.
func (r *ValidationResult) IsValid() bool {
	return !r.HasErrors()
}

func (r *ValidationResult) filter(severity ValidationSeverity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range r.issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

func (r *ValidationResult) add(issue ValidationIssue) {
	r.issues = append(r.issues, issue)
}

// Validate parses markup and reports problems without building it.
// Parse failures are reported as error issues rather than returned.
func (p *Portfolio[O]) Validate(markup string) *ValidationResult {
	result := &ValidationResult{
		issues: make([]ValidationIssue, 0),
	}

	tree := NewTree(p)
	err := tree.Construct(markup)

	malformedSeverity := SeverityWarning
	if p.config.malformed == MalformedStrict {
		malformedSeverity = SeverityError
	}
	for _, m := range tree.Malformations() {
		result.add(ValidationIssue{
			Severity: malformedSeverity,
			Message:  ValidationMsgMalformed + StrValueSeparator + m.Reason,
			Position: m.Pos,
		})
	}

	if err != nil {
		p.addParseFailure(result, err)
		return result
	}

	tree.Root().Walk(func(n *Node[O]) bool {
		p.validateNode(n, result)
		return true
	})

	if encoded, encErr := tree.ToMarkup(); encErr == nil && encoded != markup {
		result.add(ValidationIssue{
			Severity: SeverityWarning,
			Message:  ValidationMsgRoundTripDrift,
		})
	}
	return result
}

// addParseFailure records a construct error unless it is a strict-mode malformation already reported
func (p *Portfolio[O]) addParseFailure(result *ValidationResult, err error) {
	tag, _ := errorMetadata(err, MetaKeyTag)
	reason, _ := errorMetadata(err, MetaKeyReason)

	if _, malformed := errorMetadata(err, MetaKeyText); malformed {
		return
	}

	msg := ValidationMsgParseFailed + StrValueSeparator + err.Error()
	if reason == ErrMsgUnresolvableTag {
		msg = ValidationMsgUnresolvableTag
		if tag == StringValueEmpty {
			msg = ValidationMsgTextNeedFallback
		}
	}
	result.add(ValidationIssue{
		Severity: SeverityError,
		Message:  msg,
		Position: errorPosition(err),
		TagName:  tag,
	})
}

func (p *Portfolio[O]) validateNode(n *Node[O], result *ValidationResult) {
	tag := n.Tag()
	if tag != StringValueEmpty && !p.HasNodeType(tag) {
		result.add(ValidationIssue{
			Severity: SeverityWarning,
			Message:  ValidationMsgUnknownTag,
			Position: n.Pos(),
			TagName:  tag,
		})
	}

	decl := n.Kind().Options()
	for _, t := range decl.Required {
		if _, ok := n.Options.ValueOf(t.Identifier); !ok {
			result.add(ValidationIssue{
				Severity: SeverityError,
				Message:  ValidationMsgMissingRequired,
				Position: n.Pos(),
				TagName:  n.Identifier(),
				Option:   t.Identifier,
			})
		}
	}

	for _, o := range n.Options.Options() {
		if rejected, ok := o.Rejected(); ok {
			result.add(ValidationIssue{
				Severity: SeverityWarning,
				Message:  ValidationMsgFallbackApplied + StrValueSeparator + rejected,
				Position: n.Pos(),
				TagName:  n.Identifier(),
				Option:   o.Identifier(),
			})
		}
	}

	for _, d := range n.DroppedOptions() {
		result.add(ValidationIssue{
			Severity: SeverityWarning,
			Message:  ValidationMsgDroppedOption,
			Position: n.Pos(),
			TagName:  n.Identifier(),
			Option:   d.Key,
		})
	}
}
