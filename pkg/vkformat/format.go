// Package vkformat holds the Vulkan-style format registry: the enumerant
// space KTX2 headers draw vkFormat from, plus the per-format metadata the
// container codec and DFD engine need (block size, channel count,
// compressed/planar/depth-stencil classification).
package vkformat

import "fmt"

// Format is a Vulkan format enumerant, as stored in a KTX2 header's
// vkFormat field. The numeric values match VkFormat from the Vulkan
// specification; only the subset KTX2 can legally carry is named here.
type Format uint32

const (
	Undefined Format = 0

	R8Unorm   Format = 9
	R8Srgb    Format = 15
	R8G8Unorm Format = 16
	R8G8Srgb  Format = 22

	R8G8B8Unorm    Format = 23
	R8G8B8Srgb     Format = 29
	R8G8B8A8Unorm  Format = 37
	R8G8B8A8Srgb   Format = 43
	B8G8R8A8Unorm  Format = 44
	B8G8R8A8Srgb   Format = 50

	R16Unorm      Format = 70
	R16Sfloat     Format = 76
	R16G16Unorm   Format = 77
	R16G16Sfloat  Format = 83
	R16G16B16A16Sfloat Format = 97

	R32Sfloat        Format = 100
	R32G32Sfloat     Format = 103
	R32G32B32Sfloat  Format = 106
	R32G32B32A32Sfloat Format = 109

	B10G11R11UfloatPack32     Format = 122
	E5B9G9R9UfloatPack32      Format = 123
	D16Unorm                  Format = 124
	D32Sfloat                 Format = 126
	D24UnormS8Uint            Format = 129

	BC1RGBUnormBlock  Format = 131
	BC1RGBSrgbBlock   Format = 132
	BC1RGBAUnormBlock Format = 133
	BC1RGBASrgbBlock  Format = 134
	BC2UnormBlock     Format = 135
	BC2SrgbBlock      Format = 136
	BC3UnormBlock     Format = 137
	BC3SrgbBlock      Format = 138
	BC4UnormBlock     Format = 139
	BC4SnormBlock     Format = 140
	BC5UnormBlock     Format = 141
	BC5SnormBlock     Format = 142
	BC6HUfloatBlock   Format = 143
	BC6HSfloatBlock   Format = 144
	BC7UnormBlock     Format = 145
	BC7SrgbBlock      Format = 146

	ETC2R8G8B8UnormBlock   Format = 147
	ETC2R8G8B8SrgbBlock    Format = 148
	ETC2R8G8B8A1UnormBlock Format = 149
	ETC2R8G8B8A1SrgbBlock  Format = 150
	ETC2R8G8B8A8UnormBlock Format = 151
	ETC2R8G8B8A8SrgbBlock  Format = 152
	EACR11UnormBlock       Format = 153
	EACR11SnormBlock       Format = 154
	EACR11G11UnormBlock    Format = 155
	EACR11G11SnormBlock    Format = 156

	ASTC4x4UnormBlock   Format = 157
	ASTC4x4SrgbBlock    Format = 158
	ASTC5x4UnormBlock   Format = 159
	ASTC5x4SrgbBlock    Format = 160
	ASTC5x5UnormBlock   Format = 161
	ASTC5x5SrgbBlock    Format = 162
	ASTC6x5UnormBlock   Format = 163
	ASTC6x5SrgbBlock    Format = 164
	ASTC6x6UnormBlock   Format = 165
	ASTC6x6SrgbBlock    Format = 166
	ASTC8x5UnormBlock   Format = 167
	ASTC8x5SrgbBlock    Format = 168
	ASTC8x6UnormBlock   Format = 169
	ASTC8x6SrgbBlock    Format = 170
	ASTC8x8UnormBlock   Format = 171
	ASTC8x8SrgbBlock    Format = 172
	ASTC10x5UnormBlock  Format = 173
	ASTC10x5SrgbBlock   Format = 174
	ASTC10x6UnormBlock  Format = 175
	ASTC10x6SrgbBlock   Format = 176
	ASTC10x8UnormBlock  Format = 177
	ASTC10x8SrgbBlock   Format = 178
	ASTC10x10UnormBlock Format = 179
	ASTC10x10SrgbBlock  Format = 180
	ASTC12x10UnormBlock Format = 181
	ASTC12x10SrgbBlock  Format = 182
	ASTC12x12UnormBlock Format = 183
	ASTC12x12SrgbBlock  Format = 184

	// G8B8G8R8422Unorm and friends are the 4:2:2 chroma-subsampled
	// formats; KTX2 permits them but several validator rules special-case
	// their X-axis block dimension (the 422 exemption referenced by
	// pkg/dfd.Compare).
	G8B8G8R8422Unorm Format = 1000156002
	B8G8R8G8422Unorm Format = 1000156003

	ASTC3x3x3UnormBlockEXT Format = 1000288000
	ASTC3x3x3SrgbBlockEXT  Format = 1000288001
	ASTC6x6x6UnormBlockEXT Format = 1000288018
	ASTC6x6x6SrgbBlockEXT  Format = 1000288019

	// The packed 8/16-bit legacy formats below are real VkFormat
	// enumerants but are explicitly removed from the KTX2-eligible
	// subset: their packed, non-byte-aligned channel layouts can't be
	// expressed unambiguously by a synthesized BDFD sample list. They
	// are named here only so IsProhibited has something concrete to
	// test against; they are deliberately never added to registry.
	R4G4UnormPack8      Format = 1
	R4G4B4A4UnormPack16 Format = 2
	B4G4R4A4UnormPack16 Format = 3
	R5G6B5UnormPack16   Format = 4
	B5G6R5UnormPack16   Format = 5
	R5G5B5A1UnormPack16 Format = 6
	B5G5R5A1UnormPack16 Format = 7
	A1R5G5B5UnormPack16 Format = 8
)

// Info describes the per-format metadata the codec and DFD engine need.
type Info struct {
	Name                          string
	TypeSize                      uint32
	BlockWidth, BlockHeight, BlockDepth uint32
	BytesPerBlock                 uint32
	ChannelCount                  uint32
	Compressed                    bool
	SRGB                          bool
	DepthOrStencil                bool
	ASTC                          bool
	Is422                         bool
	Is3DBlockCompressed           bool
}

var registry = map[Format]Info{
	R8Unorm:   {Name: "R8_UNORM", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 1, ChannelCount: 1},
	R8Srgb:    {Name: "R8_SRGB", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 1, ChannelCount: 1, SRGB: true},
	R8G8Unorm: {Name: "R8G8_UNORM", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 2, ChannelCount: 2},
	R8G8Srgb:  {Name: "R8G8_SRGB", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 2, ChannelCount: 2, SRGB: true},

	R8G8B8Unorm:   {Name: "R8G8B8_UNORM", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 3, ChannelCount: 3},
	R8G8B8Srgb:    {Name: "R8G8B8_SRGB", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 3, ChannelCount: 3, SRGB: true},
	R8G8B8A8Unorm:  {Name: "R8G8B8A8_UNORM", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 4},
	R8G8B8A8Srgb:   {Name: "R8G8B8A8_SRGB", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 4, SRGB: true},
	B8G8R8A8Unorm:  {Name: "B8G8R8A8_UNORM", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 4},
	B8G8R8A8Srgb:   {Name: "B8G8R8A8_SRGB", TypeSize: 1, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 4, SRGB: true},

	R16Unorm:     {Name: "R16_UNORM", TypeSize: 2, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 2, ChannelCount: 1},
	R16Sfloat:    {Name: "R16_SFLOAT", TypeSize: 2, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 2, ChannelCount: 1},
	R16G16Unorm:  {Name: "R16G16_UNORM", TypeSize: 2, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 2},
	R16G16Sfloat: {Name: "R16G16_SFLOAT", TypeSize: 2, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 2},
	R16G16B16A16Sfloat: {Name: "R16G16B16A16_SFLOAT", TypeSize: 2, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 4},

	R32Sfloat:          {Name: "R32_SFLOAT", TypeSize: 4, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 1},
	R32G32Sfloat:       {Name: "R32G32_SFLOAT", TypeSize: 4, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 2},
	R32G32B32Sfloat:    {Name: "R32G32B32_SFLOAT", TypeSize: 4, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 12, ChannelCount: 3},
	R32G32B32A32Sfloat: {Name: "R32G32B32A32_SFLOAT", TypeSize: 4, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4},

	B10G11R11UfloatPack32: {Name: "B10G11R11_UFLOAT_PACK32", TypeSize: 4, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 3},
	E5B9G9R9UfloatPack32:  {Name: "E5B9G9R9_UFLOAT_PACK32", TypeSize: 4, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 3},
	D16Unorm:              {Name: "D16_UNORM", TypeSize: 2, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 2, ChannelCount: 1, DepthOrStencil: true},
	D32Sfloat:             {Name: "D32_SFLOAT", TypeSize: 4, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 1, DepthOrStencil: true},
	D24UnormS8Uint:        {Name: "D24_UNORM_S8_UINT", TypeSize: 4, BlockWidth: 1, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 2, DepthOrStencil: true},

	BC1RGBUnormBlock:  {Name: "BC1_RGB_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 3, Compressed: true},
	BC1RGBSrgbBlock:   {Name: "BC1_RGB_SRGB_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 3, Compressed: true, SRGB: true},
	BC1RGBAUnormBlock: {Name: "BC1_RGBA_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 4, Compressed: true},
	BC1RGBASrgbBlock:  {Name: "BC1_RGBA_SRGB_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 4, Compressed: true, SRGB: true},
	BC2UnormBlock:     {Name: "BC2_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true},
	BC2SrgbBlock:      {Name: "BC2_SRGB_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, SRGB: true},
	BC3UnormBlock:     {Name: "BC3_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true},
	BC3SrgbBlock:      {Name: "BC3_SRGB_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, SRGB: true},
	BC4UnormBlock:     {Name: "BC4_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 1, Compressed: true},
	BC4SnormBlock:     {Name: "BC4_SNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 1, Compressed: true},
	BC5UnormBlock:     {Name: "BC5_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 2, Compressed: true},
	BC5SnormBlock:     {Name: "BC5_SNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 2, Compressed: true},
	BC6HUfloatBlock:   {Name: "BC6H_UFLOAT_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 3, Compressed: true},
	BC6HSfloatBlock:   {Name: "BC6H_SFLOAT_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 3, Compressed: true},
	BC7UnormBlock:     {Name: "BC7_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true},
	BC7SrgbBlock:      {Name: "BC7_SRGB_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, SRGB: true},

	ETC2R8G8B8UnormBlock:   {Name: "ETC2_R8G8B8_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 3, Compressed: true},
	ETC2R8G8B8SrgbBlock:    {Name: "ETC2_R8G8B8_SRGB_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 3, Compressed: true, SRGB: true},
	ETC2R8G8B8A1UnormBlock: {Name: "ETC2_R8G8B8A1_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 4, Compressed: true},
	ETC2R8G8B8A1SrgbBlock:  {Name: "ETC2_R8G8B8A1_SRGB_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 4, Compressed: true, SRGB: true},
	ETC2R8G8B8A8UnormBlock: {Name: "ETC2_R8G8B8A8_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true},
	ETC2R8G8B8A8SrgbBlock:  {Name: "ETC2_R8G8B8A8_SRGB_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, SRGB: true},
	EACR11UnormBlock:       {Name: "EAC_R11_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 1, Compressed: true},
	EACR11SnormBlock:       {Name: "EAC_R11_SNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 8, ChannelCount: 1, Compressed: true},
	EACR11G11UnormBlock:    {Name: "EAC_R11G11_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 2, Compressed: true},
	EACR11G11SnormBlock:    {Name: "EAC_R11G11_SNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 2, Compressed: true},

	ASTC4x4UnormBlock:   {Name: "ASTC_4x4_UNORM_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC4x4SrgbBlock:    {Name: "ASTC_4x4_SRGB_BLOCK", BlockWidth: 4, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC5x4UnormBlock:   {Name: "ASTC_5x4_UNORM_BLOCK", BlockWidth: 5, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC5x4SrgbBlock:    {Name: "ASTC_5x4_SRGB_BLOCK", BlockWidth: 5, BlockHeight: 4, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC5x5UnormBlock:   {Name: "ASTC_5x5_UNORM_BLOCK", BlockWidth: 5, BlockHeight: 5, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC5x5SrgbBlock:    {Name: "ASTC_5x5_SRGB_BLOCK", BlockWidth: 5, BlockHeight: 5, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC6x5UnormBlock:   {Name: "ASTC_6x5_UNORM_BLOCK", BlockWidth: 6, BlockHeight: 5, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC6x5SrgbBlock:    {Name: "ASTC_6x5_SRGB_BLOCK", BlockWidth: 6, BlockHeight: 5, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC6x6UnormBlock:   {Name: "ASTC_6x6_UNORM_BLOCK", BlockWidth: 6, BlockHeight: 6, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC6x6SrgbBlock:    {Name: "ASTC_6x6_SRGB_BLOCK", BlockWidth: 6, BlockHeight: 6, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC8x5UnormBlock:   {Name: "ASTC_8x5_UNORM_BLOCK", BlockWidth: 8, BlockHeight: 5, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC8x5SrgbBlock:    {Name: "ASTC_8x5_SRGB_BLOCK", BlockWidth: 8, BlockHeight: 5, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC8x6UnormBlock:   {Name: "ASTC_8x6_UNORM_BLOCK", BlockWidth: 8, BlockHeight: 6, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC8x6SrgbBlock:    {Name: "ASTC_8x6_SRGB_BLOCK", BlockWidth: 8, BlockHeight: 6, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC8x8UnormBlock:   {Name: "ASTC_8x8_UNORM_BLOCK", BlockWidth: 8, BlockHeight: 8, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC8x8SrgbBlock:    {Name: "ASTC_8x8_SRGB_BLOCK", BlockWidth: 8, BlockHeight: 8, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC10x5UnormBlock:  {Name: "ASTC_10x5_UNORM_BLOCK", BlockWidth: 10, BlockHeight: 5, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC10x5SrgbBlock:   {Name: "ASTC_10x5_SRGB_BLOCK", BlockWidth: 10, BlockHeight: 5, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC10x6UnormBlock:  {Name: "ASTC_10x6_UNORM_BLOCK", BlockWidth: 10, BlockHeight: 6, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC10x6SrgbBlock:   {Name: "ASTC_10x6_SRGB_BLOCK", BlockWidth: 10, BlockHeight: 6, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC10x8UnormBlock:  {Name: "ASTC_10x8_UNORM_BLOCK", BlockWidth: 10, BlockHeight: 8, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC10x8SrgbBlock:   {Name: "ASTC_10x8_SRGB_BLOCK", BlockWidth: 10, BlockHeight: 8, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC10x10UnormBlock: {Name: "ASTC_10x10_UNORM_BLOCK", BlockWidth: 10, BlockHeight: 10, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC10x10SrgbBlock:  {Name: "ASTC_10x10_SRGB_BLOCK", BlockWidth: 10, BlockHeight: 10, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC12x10UnormBlock: {Name: "ASTC_12x10_UNORM_BLOCK", BlockWidth: 12, BlockHeight: 10, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC12x10SrgbBlock:  {Name: "ASTC_12x10_SRGB_BLOCK", BlockWidth: 12, BlockHeight: 10, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},
	ASTC12x12UnormBlock: {Name: "ASTC_12x12_UNORM_BLOCK", BlockWidth: 12, BlockHeight: 12, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true},
	ASTC12x12SrgbBlock:  {Name: "ASTC_12x12_SRGB_BLOCK", BlockWidth: 12, BlockHeight: 12, BlockDepth: 1, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, SRGB: true},

	G8B8G8R8422Unorm: {Name: "G8B8G8R8_422_UNORM", TypeSize: 1, BlockWidth: 2, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 4, Is422: true},
	B8G8R8G8422Unorm: {Name: "B8G8R8G8_422_UNORM", TypeSize: 1, BlockWidth: 2, BlockHeight: 1, BlockDepth: 1, BytesPerBlock: 4, ChannelCount: 4, Is422: true},

	ASTC3x3x3UnormBlockEXT: {Name: "ASTC_3x3x3_UNORM_BLOCK_EXT", BlockWidth: 3, BlockHeight: 3, BlockDepth: 3, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, Is3DBlockCompressed: true},
	ASTC3x3x3SrgbBlockEXT:  {Name: "ASTC_3x3x3_SRGB_BLOCK_EXT", BlockWidth: 3, BlockHeight: 3, BlockDepth: 3, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, Is3DBlockCompressed: true, SRGB: true},
	ASTC6x6x6UnormBlockEXT: {Name: "ASTC_6x6x6_UNORM_BLOCK_EXT", BlockWidth: 6, BlockHeight: 6, BlockDepth: 6, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, Is3DBlockCompressed: true},
	ASTC6x6x6SrgbBlockEXT:  {Name: "ASTC_6x6x6_SRGB_BLOCK_EXT", BlockWidth: 6, BlockHeight: 6, BlockDepth: 6, BytesPerBlock: 16, ChannelCount: 4, Compressed: true, ASTC: true, Is3DBlockCompressed: true, SRGB: true},
}

// prohibited lists VkFormat values that exist in Vulkan but are removed
// from the KTX2-eligible enumerant space (issue 3001): the packed 8/16-bit
// legacy formats, whose channel layouts can't be expressed as a
// synthesized BDFD sample list. Most other removed formats simply never
// appear in registry (and hence fail IsValid instead of IsProhibited).
var prohibited = map[Format]bool{
	R4G4UnormPack8:      true,
	R4G4B4A4UnormPack16: true,
	B4G4R4A4UnormPack16: true,
	R5G6B5UnormPack16:   true,
	B5G6R5UnormPack16:   true,
	R5G5B5A1UnormPack16: true,
	B5G5R5A1UnormPack16: true,
	A1R5G5B5UnormPack16: true,
}

// Lookup returns the metadata for f and whether f is a recognized format.
func Lookup(f Format) (Info, bool) {
	info, ok := registry[f]
	return info, ok
}

// IsValid reports whether f is a known, non-prohibited format.
func (f Format) IsValid() bool {
	if prohibited[f] {
		return false
	}
	_, ok := registry[f]
	return ok
}

// IsProhibited reports whether f was explicitly removed from the
// KTX2-eligible Vulkan enumerant space.
func (f Format) IsProhibited() bool { return prohibited[f] }

// IsReservedExtension reports whether f falls in the Vulkan extension
// enumerant range (>= 1000000000) without being a recognized value here.
// Such values are downgraded from error to warning (issue 3003) since a
// future extension format is not necessarily invalid, only unknown to
// this registry.
func (f Format) IsReservedExtension() bool {
	if _, ok := registry[f]; ok {
		return false
	}
	return f >= 1000000000
}

// IsBlockCompressed reports whether f is a compressed format requiring
// block-based level size arithmetic.
func (f Format) IsBlockCompressed() bool {
	info, ok := registry[f]
	return ok && info.Compressed
}

// Is3DBlockCompressed reports whether f uses a 3D compression block
// (currently only the ASTC 3D EXT formats), which changes level size
// arithmetic to factor in BlockDepth.
func (f Format) Is3DBlockCompressed() bool {
	info, ok := registry[f]
	return ok && info.Is3DBlockCompressed
}

// Is422 reports whether f is a 4:2:2 chroma-subsampled format; these
// formats use a width divisor of 2 and carry the X-axis sample-position
// exemption referenced by pkg/dfd.Compare.
func (f Format) Is422() bool {
	info, ok := registry[f]
	return ok && info.Is422
}

// IsSRGB reports whether f decodes to sRGB-encoded color data.
func (f Format) IsSRGB() bool {
	info, ok := registry[f]
	return ok && info.SRGB
}

// IsDepthOrStencil reports whether f is a depth/stencil format. Such a
// format is a recognized Vulkan format, distinct from IsProhibited/unknown;
// the validator flags it only when pixelDepth is nonzero (issue 3011).
func (f Format) IsDepthOrStencil() bool {
	info, ok := registry[f]
	return ok && info.DepthOrStencil
}

// IsASTC reports whether f is any ASTC variant, 2D or 3D.
func (f Format) IsASTC() bool {
	info, ok := registry[f]
	return ok && info.ASTC
}

// TypeSize returns the per-component byte size used for endianness
// swabbing; block-compressed formats report 1 (the header's typeSize
// field is fixed at 1 for compressed data per the container codec).
func (f Format) TypeSize() uint32 {
	info, ok := registry[f]
	if !ok {
		return 0
	}
	if info.Compressed {
		return 1
	}
	if info.TypeSize == 0 {
		return 1
	}
	return info.TypeSize
}

func (f Format) String() string {
	if info, ok := registry[f]; ok {
		return info.Name
	}
	return fmt.Sprintf("VK_FORMAT_UNKNOWN(%d)", uint32(f))
}
