// Package backend exposes tools that submit prompt graphs to a running
// ComfyUI instance and collect the produced images.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/comfygraph/comfygraph/client/comfyui"
	"github.com/comfygraph/comfygraph/model/types"
	"github.com/comfygraph/comfygraph/service/oplog"
	"github.com/viant/afs"
)

const name = "backend"

// Service implements the backend execution tools.
type Service struct {
	client      *comfyui.Client
	fs          afs.Service
	templateDir string
	log         *oplog.Log
}

// New creates the backend service. templateDir is the base URL holding named
// prompt graph templates used by textToImage.
func New(client *comfyui.Client, templateDir string, log *oplog.Log) *Service {
	return &Service{client: client, fs: afs.New(), templateDir: templateDir, log: log}
}

// Name returns the service name.
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods.
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "run",
			Description: "Submits a prompt graph and returns the produced images.",
			Input:       reflect.TypeOf(&RunInput{}),
			Output:      reflect.TypeOf(&RunOutput{}),
		},
		{
			Name:        "runFromLocation",
			Description: "Loads a prompt graph from a URL, submits it and returns the produced images.",
			Input:       reflect.TypeOf(&RunFromLocationInput{}),
			Output:      reflect.TypeOf(&RunOutput{}),
		},
		{
			Name:        "textToImage",
			Description: "Generates images from a text prompt using the named template graph.",
			Input:       reflect.TypeOf(&TextToImageInput{}),
			Output:      reflect.TypeOf(&RunOutput{}),
		},
	}
}

// Method returns the specified method.
func (s *Service) Method(methodName string) (types.Executable, error) {
	switch strings.ToLower(methodName) {
	case "run":
		return s.run, nil
	case "runfromlocation":
		return s.runFromLocation, nil
	case "texttoimage":
		return s.textToImage, nil
	default:
		return nil, types.NewMethodNotFoundError(methodName)
	}
}

func (s *Service) run(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*RunInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*RunOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	if len(input.Graph) == 0 {
		return fmt.Errorf("prompt graph was empty")
	}
	return s.submit(ctx, input.Graph, input.Params, input.IncludeData, output)
}

func (s *Service) runFromLocation(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*RunFromLocationInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*RunOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	graph, err := s.loadGraph(ctx, input.Location)
	if err != nil {
		return err
	}
	return s.submit(ctx, graph, input.Params, input.IncludeData, output)
}

func (s *Service) textToImage(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*TextToImageInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*RunOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	template := input.Template
	if template == "" {
		template = "text_to_image"
	}
	location := strings.TrimSuffix(s.templateDir, "/") + "/" + template + ".json"
	graph, err := s.loadGraph(ctx, location)
	if err != nil {
		return err
	}
	params := map[string]interface{}{"text": input.Prompt}
	if input.Seed != nil {
		params["seed"] = *input.Seed
	}
	if input.Steps != nil {
		params["steps"] = *input.Steps
	}
	if input.CFG != nil {
		params["cfg"] = *input.CFG
	}
	if input.Denoise != nil {
		params["denoise"] = *input.Denoise
	}
	return s.submit(ctx, graph, params, input.IncludeData, output)
}

func (s *Service) submit(ctx context.Context, graph, params map[string]interface{}, includeData bool, output *RunOutput) error {
	comfyui.ApplyParams(graph, params)
	queued, err := s.client.QueuePrompt(ctx, graph)
	if err != nil {
		return err
	}
	if err = s.client.Wait(ctx, queued.PromptID); err != nil {
		return err
	}
	images, err := s.client.Collect(ctx, queued.PromptID, includeData)
	if err != nil {
		return err
	}
	s.log.Info("backend.run", "executed prompt graph",
		map[string]interface{}{"prompt_id": queued.PromptID, "num_images": len(images)}, "")

	output.PromptID = queued.PromptID
	output.Images = images
	output.NumImages = len(images)
	return nil
}

func (s *Service) loadGraph(ctx context.Context, location string) (map[string]interface{}, error) {
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt graph from %v: %w", location, err)
	}
	var graph map[string]interface{}
	if err = json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("invalid prompt graph at %v: %w", location, err)
	}
	return graph, nil
}
