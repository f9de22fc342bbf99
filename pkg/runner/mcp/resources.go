package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCategoriesResource(srv, svc)
	registerTypesResource(srv, svc)
	registerRecordTemplate(srv, svc)
}

func registerCategoriesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"massadd://categories",
		"Categories",
		mcp.WithResourceDescription("Categories (decks) notes can be added to."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		categories, err := svc.Categories(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"categories": categories,
			"default":    svc.Defaults.Category,
			"count":      len(categories),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTypesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"massadd://types",
		"Record Types",
		mcp.WithResourceDescription("Record types with their ordered field names."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		types, err := svc.RecordTypes(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"types":   types,
			"default": svc.Defaults.Type,
			"count":   len(types),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerRecordTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"massadd://records/{id}",
		"Record Details",
		mcp.WithTemplateDescription("A single note with its fields and tags."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments, "id")
		if id == "" {
			return nil, fmt.Errorf("record id is required")
		}

		dto, err := svc.RecordByID(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"record": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable, which arrives as a string
// slice.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
