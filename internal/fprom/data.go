/*
 * p2patch - Default FPROM constant dataset
 *
 * Copyright 2026, p2patch contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package fprom

// defaultEntries holds the subset of the 512-entry on-die floating point
// constant ROM that this program knows about. Like the reference tool this
// is ported from, the set is incomplete: entries absent here are reported
// via Table.Exists rather than assumed to be zero, and callers that need a
// missing entry fall back to the seed-search in the patch body codec.
var defaultEntries = map[uint32]uint32{
	0x001: 0x5D830CF4,
	0x003: 0x92805B2A,
	0x007: 0xD9E41A1F,
	0x00A: 0xD749D6F2,
	0x00F: 0x4115AD71,
	0x012: 0x62E4D939,
	0x014: 0x60AF80C8,
	0x015: 0xD9D78852,
	0x01C: 0x4961C522,
	0x01F: 0xABBA4237,
	0x020: 0x5EBC8D6F,
	0x022: 0x401F9A6A,
	0x023: 0xC1CFFAAD,
	0x03E: 0xD4256FEE,
	0x043: 0xAFFC47D2,
	0x04B: 0xE909D9A1,
	0x054: 0xD8B41492,
	0x05C: 0x18AFCD9A,
	0x06A: 0x18BAAF63,
	0x071: 0xD5581AF4,
	0x074: 0x35514A5A,
	0x078: 0xCCD79F0F,
	0x07B: 0x670A7C9F,
	0x087: 0xD610416B,
	0x08B: 0x3014F3F4,
	0x095: 0xD5A086EA,
	0x098: 0x05325D07,
	0x09D: 0x7212042F,
	0x0A1: 0xFE659FB1,
	0x0A5: 0xE8AA1E4E,
	0x0AA: 0xA1BFB92F,
	0x0AC: 0xF38EBEE4,
	0x0AF: 0x52A52A1C,
	0x0B3: 0x16222FCC,
	0x0B7: 0x1F0D37D1,
	0x0BD: 0x1B76E2BB,
	0x0BE: 0xA471B749,
	0x0C8: 0x2FC15E21,
	0x0CC: 0x9919ABCE,
	0x0D4: 0xAD62A2FD,
	0x0D5: 0xB842E652,
	0x0D6: 0xD659A732,
	0x0D8: 0x6B65D06C,
	0x0DF: 0xF92577B1,
	0x0E1: 0x22EA11B8,
	0x0E9: 0x6E4E60F4,
	0x0EC: 0x65E1EF8E,
	0x0F2: 0xCB5CE91F,
	0x0F3: 0xDB01090B,
	0x0F4: 0x74886C32,
	0x116: 0x5B65147B,
	0x117: 0xE87F39CA,
	0x119: 0x08ECDC57,
	0x11A: 0x10082A55,
	0x11E: 0xEC729CEC,
	0x125: 0xF11EB116,
	0x126: 0x65186F68,
	0x129: 0xD15B7EAD,
	0x130: 0x89A029FE,
	0x138: 0x13DDC3CE,
	0x139: 0x996F7EBA,
	0x13E: 0x54E7F896,
	0x142: 0x88F51F73,
	0x146: 0xDB6BB63A,
	0x149: 0xEDFF8C99,
	0x14C: 0x6FBEE90C,
	0x14E: 0x57D3DB6F,
	0x14F: 0x6D3B4827,
	0x152: 0x9FF01CE8,
	0x155: 0xBA6CDED6,
	0x158: 0x59AA3093,
	0x15F: 0xC9EEE84D,
	0x164: 0x36037EE6,
	0x16C: 0xFD326E66,
	0x16D: 0x4FFD1F30,
	0x17B: 0x757DA2BD,
	0x17D: 0x74893883,
	0x188: 0x1EEB4DE8,
	0x18E: 0x70B85A16,
	0x191: 0xDF52241D,
	0x194: 0x8740EEAC,
	0x195: 0xBA4D5012,
	0x197: 0xEA926435,
	0x19C: 0xBE3F7912,
	0x1A1: 0xCC733BAF,
	0x1A3: 0x48ADCB98,
	0x1AC: 0x76F9855D,
	0x1AD: 0x3EC1056C,
	0x1BA: 0x850D7876,
	0x1BC: 0xFA255134,
	0x1C0: 0x308A2585,
	0x1C1: 0xB0239DF7,
	0x1CD: 0xD8AA6E37,
	0x1D8: 0x1A91D592,
	0x1E0: 0xEF3AB277,
	0x1E3: 0x1F01E614,
	0x1E4: 0x20C87D0E,
	0x1F9: 0x79654866,
	0x1FA: 0xE191F26B,
	0x1FE: 0x7EAEC566,
}
