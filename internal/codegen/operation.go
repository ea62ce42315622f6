package codegen

import (
	"strings"

	"railsgen/internal/model"
	"railsgen/internal/naming"
)

// NormalizeOperation prepares an operation for rendering, in place.
func (p *Processor) NormalizeOperation(op *model.Operation) *model.Operation {
	op.Method = strings.ToLower(op.Method)
	op.Summary = commentText(op.Summary)
	op.Notes = commentText(op.Notes)

	if len(op.AllParams) == 0 {
		op.AllParams = nil
		op.ParamState = model.ParamsNone
	} else {
		op.ParamState = model.ParamsPresent
		for i, prm := range op.AllParams {
			prm.HasMore = i < len(op.AllParams)-1
		}
	}

	for _, resp := range op.Responses {
		if resp.Code == model.DefaultResponseCode {
			resp.Code = "default"
		}
		resp.Message = commentText(resp.Message)
	}

	if len(op.Examples) > 0 {
		kept := make([]*model.Example, 0, len(op.Examples))
		for _, ex := range op.Examples {
			if strings.HasPrefix(ex.ContentType, model.JSONMediaType) {
				kept = append(kept, ex)
			}
		}
		op.Examples = kept
	}

	return op
}

// commentText makes free text safe inside a single-line Ruby comment.
func commentText(s string) string {
	return naming.EscapeQuotes(naming.EscapeUnsafe(naming.SingleLine(s)))
}
