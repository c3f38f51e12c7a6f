package color

// sRGBToLinearLUT maps every sRGB byte to its linear value.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT maps linear values quantized to 12 bits to sRGB bytes.
// 4096 entries keep the round trip exact for all 256 sRGB levels.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range sRGBToLinearLUT {
		sRGBToLinearLUT[i] = SRGBToLinear(float32(i) / 255)
	}
	for i := range linearToSRGBLUT {
		linearToSRGBLUT[i] = unitToByte(LinearToSRGB(float32(i) / 4095))
	}
}

// SRGBToLinearFast converts an sRGB byte to a linear value by table lookup.
//
//	r := SRGBToLinearFast(128) // ~0.2159 (not 0.5!)
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts a linear value to an sRGB byte by table lookup.
// Input is clamped to [0,1].
//
//	s := LinearToSRGBFast(0.5) // 188 (not 128!)
func LinearToSRGBFast(l float32) uint8 {
	if !(l > 0) { // also catches NaN
		return 0
	}
	if l >= 1 {
		return 255
	}
	return linearToSRGBLUT[int(l*4095+0.5)]
}
