package classify

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXEngine runs a pretrained digit classifier through ONNX Runtime.
//
// The model artifact is loaded from a filesystem path and must expose exactly
// one input (a (1,H,W,C) float32 tensor) and one output (a score vector of
// length NumClasses). Run calls are serialized with a mutex, so a single
// engine may be shared across goroutines.
type ONNXEngine struct {
	mu         sync.Mutex
	session    *ort.DynamicAdvancedSession
	inputShape []int64
}

// NewONNXEngine loads the model at modelPath and prepares an inference
// session. The onnxruntime environment is initialized on first use and shared
// process-wide.
func NewONNXEngine(modelPath string) (*ONNXEngine, error) {
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize onnxruntime: %w", err)
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model metadata from %s: %w", modelPath, err)
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, fmt.Errorf("model must have exactly one input and one output, got %d and %d",
			len(inputs), len(outputs))
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{inputs[0].Name}, []string{outputs[0].Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference session: %w", err)
	}

	return &ONNXEngine{
		session:    session,
		inputShape: append([]int64(nil), inputs[0].Dimensions...),
	}, nil
}

// InputShape reports the model's declared input height, width and channel
// count. ok is false when the model uses dynamic dimensions or a non-NHWC
// rank, in which case the caller must configure the size explicitly.
func (e *ONNXEngine) InputShape() (height, width, channels int, ok bool) {
	if len(e.inputShape) != 4 {
		return 0, 0, 0, false
	}
	height = int(e.inputShape[1])
	width = int(e.inputShape[2])
	channels = int(e.inputShape[3])
	if height <= 0 || width <= 0 || channels <= 0 {
		return 0, 0, 0, false
	}
	return height, width, channels, true
}

// Infer runs one tensor through the model and returns a copy of the score
// vector.
func (e *ONNXEngine) Infer(t *Tensor) ([]float32, error) {
	shape := t.Shape()
	input, err := ort.NewTensor(ort.NewShape(shape[0], shape[1], shape[2], shape[3]), t.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, NumClasses))
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer output.Destroy()

	e.mu.Lock()
	err = e.session.Run([]ort.Value{input}, []ort.Value{output})
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("model invocation failed: %w", err)
	}

	scores := make([]float32, NumClasses)
	copy(scores, output.GetData())
	return scores, nil
}

// Close releases the inference session. The engine must not be used after
// Close returns.
func (e *ONNXEngine) Close() error {
	if e.session == nil {
		return nil
	}
	err := e.session.Destroy()
	e.session = nil
	return err
}
