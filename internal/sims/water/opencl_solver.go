//go:build opencl

package water

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// maxDisturbances bounds the per-tick disturbance upload: pointer and drop.
const maxDisturbances = 2

const waterKernelSource = `__kernel void water_step(
    const int n,
    const float extent,
    const float damping,
    const float radius,
    const float strength,
    const int count,
    __global const float2* disturbances,
    __global const float2* src,
    __global float2* dst)
{
    int idx = get_global_id(0);
    if (idx >= n * n) {
        return;
    }
    int x = idx % n;
    int y = idx / n;
    int left = y * n + max(x - 1, 0);
    int right = y * n + min(x + 1, n - 1);
    int below = max(y - 1, 0) * n + x;
    int above = min(y + 1, n - 1) * n + x;
    float2 c = src[idx];
    float h = ((src[left].x + src[right].x + src[below].x + src[above].x) * 0.5f - c.y) * damping;
    float size = extent / (float)n;
    float half_extent = extent * 0.5f;
    float2 centre = (float2)((x + 0.5f) * size - half_extent, (y + 0.5f) * size - half_extent);
    for (int k = 0; k < count; k++) {
        float d = length(centre - disturbances[k]);
        if (d < radius) {
            float phase = clamp(d * M_PI_F / radius, 0.0f, M_PI_F);
            h += (cos(phase) + 1.0f) * strength;
        }
    }
    dst[idx] = (float2)(h, c.x);
}`

// OpenCLSolver runs the update on a GPU (or CPU) OpenCL device. The device
// keeps both grids; every tick is read back so the host mesh stays current.
type OpenCLSolver struct {
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernel  *cl.Kernel

	srcBuf  *cl.MemObject
	dstBuf  *cl.MemObject
	distBuf *cl.MemObject

	n          int
	deviceName string
	coldStart  bool
	resets     uint64
	points     []float32
}

func newOpenCLSolver(n int) (Solver, error) {
	s, err := NewOpenCLSolver(n)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewOpenCLSolver picks the first GPU, falling back to a CPU device.
func NewOpenCLSolver(n int) (*OpenCLSolver, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms"
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSolverUnavailable, msg, err)
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("%w: no OpenCL platforms available", ErrSolverUnavailable)
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, fmt.Errorf("%w: no suitable OpenCL devices found", ErrSolverUnavailable)
	}

	s := &OpenCLSolver{
		n:          n,
		deviceName: device.Name(),
		coldStart:  true,
		points:     make([]float32, 2*maxDisturbances),
	}
	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("%w: creating OpenCL context: %v", ErrSolverUnavailable, err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: creating OpenCL command queue: %v", ErrSolverUnavailable, err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{waterKernelSource}); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: creating OpenCL program: %v", ErrSolverUnavailable, err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("%w: building OpenCL program: %s", ErrSolverUnavailable, string(buildErr))
		}
		return nil, fmt.Errorf("%w: building OpenCL program: %v", ErrSolverUnavailable, err)
	}
	if s.kernel, err = s.program.CreateKernel("water_step"); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: creating OpenCL kernel: %v", ErrSolverUnavailable, err)
	}

	cellBytes := n * n * int(unsafe.Sizeof(Cell{}))
	if s.srcBuf, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, cellBytes); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: allocating source buffer: %v", ErrSolverUnavailable, err)
	}
	if s.dstBuf, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, cellBytes); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: allocating destination buffer: %v", ErrSolverUnavailable, err)
	}
	if s.distBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, len(s.points)*int(unsafe.Sizeof(float32(0)))); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: allocating disturbance buffer: %v", ErrSolverUnavailable, err)
	}
	return s, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// cellFloats views a cell grid as interleaved height/prev float32 pairs.
func cellFloats(cells []Cell) []float32 {
	if len(cells) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&cells[0])), 2*len(cells))
}

func (s *OpenCLSolver) Name() string { return SolverOpenCL }

// DeviceName reports the device chosen at construction.
func (s *OpenCLSolver) DeviceName() string { return s.deviceName }

func (s *OpenCLSolver) Step(f *Field, p StepParams) error {
	if f.Resolution() != s.n {
		return fmt.Errorf("field resolution %d does not match solver resolution %d", f.Resolution(), s.n)
	}
	src, dst := f.buffers()
	// Host-side resets invalidate the device copy.
	if s.coldStart || f.resets != s.resets {
		if _, err := s.queue.EnqueueWriteBufferFloat32(s.srcBuf, false, 0, cellFloats(src), nil); err != nil {
			return fmt.Errorf("writing source buffer: %w", err)
		}
		s.coldStart = false
		s.resets = f.resets
	}

	active := p.active()
	if len(active) > maxDisturbances {
		active = active[:maxDisturbances]
	}
	for i, d := range active {
		s.points[2*i] = float32(d.X)
		s.points[2*i+1] = float32(d.Y)
	}
	if len(active) > 0 {
		if _, err := s.queue.EnqueueWriteBufferFloat32(s.distBuf, false, 0, s.points, nil); err != nil {
			return fmt.Errorf("writing disturbance buffer: %w", err)
		}
	}

	if err := s.kernel.SetArgs(
		int32(s.n),
		float32(f.Extent()),
		float32(p.Damping),
		float32(p.Radius),
		float32(p.Strength),
		int32(len(active)),
		s.distBuf,
		s.srcBuf,
		s.dstBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, []int{s.n * s.n}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.dstBuf, true, 0, cellFloats(dst), nil); err != nil {
		return fmt.Errorf("reading destination buffer: %w", err)
	}
	s.srcBuf, s.dstBuf = s.dstBuf, s.srcBuf
	f.commit()
	return nil
}

func (s *OpenCLSolver) Close() {
	if s.distBuf != nil {
		s.distBuf.Release()
		s.distBuf = nil
	}
	if s.dstBuf != nil {
		s.dstBuf.Release()
		s.dstBuf = nil
	}
	if s.srcBuf != nil {
		s.srcBuf.Release()
		s.srcBuf = nil
	}
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}
