package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/comfygraph/comfygraph/client/comfyui"
	"github.com/comfygraph/comfygraph/service/oplog"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	_ "github.com/viant/afs/mem"
)

// newFakeBackend serves the minimal ComfyUI surface one prompt execution
// touches: queueing, the progress websocket, history and image download.
func newFakeBackend(t *testing.T, promptID string, queued *map[string]interface{}) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/prompt":
			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if queued != nil {
				*queued = body
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"prompt_id": promptID})
		case "/ws":
			conn, err := upgrader.Upgrade(w, r, nil)
			if !assert.NoError(t, err) {
				return
			}
			defer conn.Close()
			conn.WriteJSON(map[string]interface{}{
				"type": "executing",
				"data": map[string]interface{}{"node": nil, "prompt_id": promptID},
			})
		case "/history/" + promptID:
			json.NewEncoder(w).Encode(map[string]interface{}{
				promptID: map[string]interface{}{
					"outputs": map[string]interface{}{
						"9": map[string]interface{}{
							"images": []map[string]interface{}{
								{"filename": "out.png", "subfolder": "", "type": "output"},
							},
						},
					},
				},
			})
		case "/view":
			w.Write([]byte("png-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestService_Run(t *testing.T) {
	var queued map[string]interface{}
	fake := newFakeBackend(t, "p-1", &queued)
	defer fake.Close()

	service := New(comfyui.New(fake.URL), "mem://localhost/templates", oplog.New(0))
	output := &RunOutput{}
	err := service.run(context.Background(), &RunInput{
		Graph: map[string]interface{}{
			"1": map[string]interface{}{"class_type": "KSampler", "inputs": map[string]interface{}{"seed": 1}},
		},
		Params: map[string]interface{}{"seed": 42},
	}, output)
	assert.NoError(t, err)
	assert.Equal(t, "p-1", output.PromptID)
	assert.Equal(t, 1, output.NumImages)
	if assert.Len(t, output.Images, 1) {
		assert.Equal(t, "out.png", output.Images[0].Filename)
		assert.Empty(t, output.Images[0].Data)
	}

	// The override was applied before queueing.
	prompt := queued["prompt"].(map[string]interface{})
	inputs := prompt["1"].(map[string]interface{})["inputs"].(map[string]interface{})
	assert.Equal(t, float64(42), inputs["seed"])
}

func TestService_RunEmptyGraph(t *testing.T) {
	service := New(comfyui.New("http://localhost:0"), "", oplog.New(0))
	err := service.run(context.Background(), &RunInput{}, &RunOutput{})
	assert.Error(t, err)
}

func TestService_TextToImage(t *testing.T) {
	fake := newFakeBackend(t, "p-2", nil)
	defer fake.Close()

	template := map[string]interface{}{
		"1": map[string]interface{}{
			"class_type": "CLIPTextEncode",
			"inputs":     map[string]interface{}{"text": "placeholder"},
		},
	}
	data, err := json.Marshal(template)
	assert.NoError(t, err)
	fs := afs.New()
	err = fs.Upload(context.Background(), "mem://localhost/templates/text_to_image.json",
		file.DefaultFileOsMode, bytes.NewReader(data))
	assert.NoError(t, err)

	service := New(comfyui.New(fake.URL), "mem://localhost/templates", oplog.New(0))
	output := &RunOutput{}
	err = service.textToImage(context.Background(), &TextToImageInput{Prompt: "a cat", IncludeData: true}, output)
	assert.NoError(t, err)
	assert.Equal(t, "p-2", output.PromptID)
	if assert.Len(t, output.Images, 1) {
		assert.Equal(t, []byte("png-bytes"), output.Images[0].Data)
	}
}

func TestService_TextToImageMissingTemplate(t *testing.T) {
	service := New(comfyui.New("http://localhost:0"), "mem://localhost/no-templates", oplog.New(0))
	err := service.textToImage(context.Background(), &TextToImageInput{Prompt: "a cat"}, &RunOutput{})
	assert.Error(t, err)
}
