// Package classify turns a digit-region crop into a raw meter reading.
//
// The inference backend is a capability: anything implementing Engine
// (a (1,H,W,C) float32 tensor in, a vector of 10 class scores out) can serve
// as the classifier. Two backends ship with the package: ONNXEngine runs a
// pretrained model through ONNX Runtime, and TesseractEngine is a model-free
// fallback that reads the digit with OCR.
//
// A raw reading is the predicted class index divided by 10, a continuous
// value in [0, 1). The rounded digit is recovered downstream; the raw form is
// kept because it is displayed separately and because future smoothing may
// produce values between class fractions.
package classify
