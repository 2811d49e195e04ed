package assist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pharmaqualify/qms-gin/internal/model"
)

// Advisor 面向各模块的建议封装
type Advisor struct {
	client Client
}

// NewAdvisor 创建建议封装
func NewAdvisor(client Client) *Advisor {
	return &Advisor{client: client}
}

// SuggestDeviationAnalysis 为偏差建议根因与 CAPA 方向
func (a *Advisor) SuggestDeviationAnalysis(ctx context.Context, d *model.Deviation) (*model.AIAnalysis, error) {
	prompt := fmt.Sprintf(
		"As a pharmaceutical QA expert, analyze this deviation and propose a root cause, a corrective action and a preventive action. Department: %s. Severity: %s. Description: %s",
		d.Department, d.Severity, d.Description)
	schema := `{"rootCause": "string", "correctiveAction": "string", "preventiveAction": "string"}`

	raw, err := a.client.Generate(ctx, prompt, schema)
	if err != nil {
		return nil, err
	}
	var analysis model.AIAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("%w: malformed suggestion payload", ErrUnavailable)
	}
	return &analysis, nil
}

// HazardSuggestion 工艺步骤的危害建议
type HazardSuggestion struct {
	Hazard     string `json:"hazard"`
	Severity   int    `json:"severity"`
	Occurrence int    `json:"occurrence"`
	Detection  int    `json:"detection"`
	Mitigation string `json:"mitigation"`
}

// ScoutHazards 为工艺步骤扫描潜在危害
func (a *Advisor) ScoutHazards(ctx context.Context, processStep string) ([]HazardSuggestion, error) {
	prompt := fmt.Sprintf(
		"As an ICH Q9 risk management expert, list potential hazards for the pharmaceutical process step %q with severity, occurrence and detection scores from 1 to 10 and a mitigation for each.",
		processStep)
	schema := `[{"hazard": "string", "severity": 1, "occurrence": 1, "detection": 1, "mitigation": "string"}]`

	raw, err := a.client.Generate(ctx, prompt, schema)
	if err != nil {
		return nil, err
	}
	var suggestions []HazardSuggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, fmt.Errorf("%w: malformed suggestion payload", ErrUnavailable)
	}
	return suggestions, nil
}

// SuggestMonographTests 按药典专论建议检验项
func (a *Advisor) SuggestMonographTests(ctx context.Context, productName string, category model.COACategory) ([]model.SpecLine, error) {
	prompt := fmt.Sprintf(
		"As a pharmacopoeial expert, list the monograph test items with acceptance criteria for a %s certificate of analysis of %q.",
		category, productName)
	schema := `[{"test": "string", "spec": "string", "result": "", "status": "Pending", "category": "Physical"}]`

	raw, err := a.client.Generate(ctx, prompt, schema)
	if err != nil {
		return nil, err
	}
	var lines []model.SpecLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: malformed suggestion payload", ErrUnavailable)
	}
	for i := range lines {
		if lines[i].Status == "" {
			lines[i].Status = model.SpecPending
		}
	}
	return lines, nil
}

// DraftMFR 起草主配方模板骨架
func (a *Advisor) DraftMFR(ctx context.Context, productName string, dosageForm string) (*model.MFR, error) {
	prompt := fmt.Sprintf(
		"As a pharmaceutical manufacturing expert, draft a master formula record for %q (%s): ingredients with quantities, manufacturing steps grouped by Preparation/Processing/QC/Packaging, and packaging materials.",
		productName, dosageForm)
	schema := `{"productName": "string", "dosageForm": "string", "ingredients": [], "steps": [], "packagingSteps": [], "packagingMaterials": []}`

	raw, err := a.client.Generate(ctx, prompt, schema)
	if err != nil {
		return nil, err
	}
	var draft model.MFR
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("%w: malformed suggestion payload", ErrUnavailable)
	}
	draft.ProductName = productName
	draft.DosageForm = dosageForm
	return &draft, nil
}
