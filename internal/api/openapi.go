package api

import (
	"github.com/stormsift/stormsift/internal/config"
	"github.com/stormsift/stormsift/pkg/openapi"
)

func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec("stormsift API", cfg.Version)
	spec.SetDescription("Stormwater compliance inspection analysis: photo intake, multi-model ensemble verdicts, corrective action checklists, and regulator reporting.")
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Detection": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"defect_class": {Type: "string", Description: "BMP failure class", Example: "silt_fence_tear"},
				"confidence":   {Type: "number", Description: "Detection confidence in [0,1]"},
				"severity":     {Type: "string", Enum: []any{"low", "medium", "high", "critical"}},
				"bounding_box": {Type: "object", Description: "Pixel region of the defect"},
				"description":  {Type: "string"},
			},
		},
		"Analysis": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                     {Type: "string", Format: "uuid"},
				"inspection_id":          {Type: "string", Format: "uuid"},
				"site_id":                {Type: "string", Format: "uuid"},
				"detections":             {Type: "array", Items: openapi.SchemaRef("Detection")},
				"is_compliant":           {Type: "boolean"},
				"confidence":             {Type: "number"},
				"consensus_level":        {Type: "string", Enum: []any{"high", "medium", "low"}},
				"requires_manual_review": {Type: "boolean"},
				"review_reason":          {Type: "string"},
				"risk_score":             {Type: "number", Description: "Scaled 0-100"},
				"rain_triggered":         {Type: "boolean"},
			},
		},
	})

	spec.Paths["/inspections"] = &openapi.PathItem{
		Get:  &openapi.Operation{Summary: "List inspections", Tags: []string{"inspections"}, Responses: okResponse("Paginated inspections")},
		Post: &openapi.Operation{Summary: "Upload an inspection photo (multipart)", Tags: []string{"inspections"}, Responses: createdResponse("Registered inspection")},
	}
	spec.Paths["/inspections/{id}"] = &openapi.PathItem{
		Get:    &openapi.Operation{Summary: "Find an inspection", Tags: []string{"inspections"}, Parameters: idParam(), Responses: okResponse("Inspection")},
		Delete: &openapi.Operation{Summary: "Delete an inspection and its photo", Tags: []string{"inspections"}, Parameters: idParam(), Responses: noContentResponse()},
	}
	spec.Paths["/inspections/{id}/photo"] = &openapi.PathItem{
		Get: &openapi.Operation{Summary: "Download the inspection photo", Tags: []string{"inspections"}, Parameters: idParam(), Responses: okResponse("Photo bytes")},
	}
	spec.Paths["/inspections/{id}/status"] = &openapi.PathItem{
		Put: &openapi.Operation{Summary: "Update inspection status", Tags: []string{"inspections"}, Parameters: idParam(), Responses: okResponse("Updated inspection")},
	}

	spec.Paths["/analyses/{inspectionId}"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Run the ensemble analysis for an inspection photo",
			Tags:       []string{"analyses"},
			Parameters: []*openapi.Parameter{openapi.PathParam("inspectionId", "Inspection identifier")},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Stored analysis", "Analysis"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
	spec.Paths["/analyses/{id}/review"] = &openapi.PathItem{
		Post: &openapi.Operation{Summary: "Resolve a flagged analysis", Tags: []string{"analyses"}, Parameters: idParam(), Responses: okResponse("Reviewed analysis")},
	}
	spec.Paths["/analyses"] = &openapi.PathItem{
		Get: &openapi.Operation{Summary: "List analyses", Tags: []string{"analyses"}, Responses: okResponse("Paginated analyses")},
	}

	spec.Paths["/checklists/generate/{analysisId}"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Generate a corrective action checklist from an analysis",
			Tags:       []string{"checklists"},
			Parameters: []*openapi.Parameter{openapi.PathParam("analysisId", "Analysis identifier")},
			Responses:  createdResponse("Generated checklist"),
		},
	}
	spec.Paths["/checklists"] = &openapi.PathItem{
		Get:  &openapi.Operation{Summary: "List checklists", Tags: []string{"checklists"}, Responses: okResponse("Paginated checklists")},
		Post: &openapi.Operation{Summary: "Create a checklist manually", Tags: []string{"checklists"}, Responses: createdResponse("Created checklist")},
	}

	spec.Paths["/prompts"] = &openapi.PathItem{
		Get:  &openapi.Operation{Summary: "List prompt overrides", Tags: []string{"prompts"}, Responses: okResponse("Paginated prompts")},
		Post: &openapi.Operation{Summary: "Create a prompt override", Tags: []string{"prompts"}, Responses: createdResponse("Created prompt")},
	}
	spec.Paths["/prompts/{id}/activate"] = &openapi.PathItem{
		Post: &openapi.Operation{Summary: "Activate a prompt override for its stage", Tags: []string{"prompts"}, Parameters: idParam(), Responses: okResponse("Activated prompt")},
	}

	spec.Paths["/weather"] = &openapi.PathItem{
		Get:  &openapi.Operation{Summary: "List rainfall observations", Tags: []string{"weather"}, Responses: okResponse("Paginated observations")},
		Post: &openapi.Operation{Summary: "Record a rainfall observation", Tags: []string{"weather"}, Responses: createdResponse("Recorded observation")},
	}
	spec.Paths["/weather/sites/{siteId}/status"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Evaluate the 24-hour rain trigger for a site",
			Tags:       []string{"weather"},
			Parameters: []*openapi.Parameter{openapi.PathParam("siteId", "Site identifier")},
			Responses:  okResponse("Rain trigger status"),
		},
	}

	spec.Paths["/reports/sites"] = &openapi.PathItem{
		Get: &openapi.Operation{Summary: "Per-site compliance summaries", Tags: []string{"reports"}, Responses: okResponse("Site summaries")},
	}
	spec.Paths["/reports/sites/{siteId}/export"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Export the site's analyses as CSV to blob storage",
			Tags:       []string{"reports"},
			Parameters: []*openapi.Parameter{openapi.PathParam("siteId", "Site identifier")},
			Responses:  createdResponse("Export metadata"),
		},
	}

	return spec
}

func idParam() []*openapi.Parameter {
	return []*openapi.Parameter{openapi.PathParam("id", "Resource identifier")}
}

func okResponse(description string) map[int]*openapi.Response {
	return map[int]*openapi.Response{
		200: {Description: description},
		404: openapi.ResponseRef("NotFound"),
	}
}

func createdResponse(description string) map[int]*openapi.Response {
	return map[int]*openapi.Response{
		201: {Description: description},
		400: openapi.ResponseRef("BadRequest"),
	}
}

func noContentResponse() map[int]*openapi.Response {
	return map[int]*openapi.Response{
		204: {Description: "Deleted"},
		404: openapi.ResponseRef("NotFound"),
	}
}
