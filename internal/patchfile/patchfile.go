/*
 * p2patch - Binary patch file layout
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

// Package patchfile reads and writes the on-disk binary patch: a fixed
// 48-byte header followed by the encrypted body from package patchbody. The
// header is opaque to the cryptographic core; it is copied through
// verbatim on both read and write.
package patchfile

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pbosch/p2patch/internal/patchbody"
	"github.com/pbosch/p2patch/internal/patcherr"
)

// HeaderSize is the packed size of Header in bytes.
const HeaderSize = 48

// bodySize is the packed size of the wire body: key_seed + reserved +
// msram + msram_integrity + reserved + cr_ops.
const bodySize = 4 + 4 + patchbody.MSRAMWordCount*4 + 4 + 4 + patchbody.CROpCount*16

// Size is the total on-disk size of a patch file.
const Size = HeaderSize + bodySize

// Header is the 48-byte patch header. It is never cryptographically
// transformed; reserved is zeroed on write and ignored on read.
type Header struct {
	HeaderVer uint32
	UpdateRev uint32
	DateBCD   uint32
	ProcSig   uint32
	Checksum  uint32
	LoaderVer uint32
	ProcFlags uint32
	DataSize  uint32
	TotalSize uint32

	// Reserved holds the 12 trailing header bytes. It is zeroed on Marshal
	// and ignored on Parse; encoding/binary requires the field exported so
	// it can populate it via reflection even though nothing reads it back.
	Reserved [12]byte
}

// wireCROp is the packed, little-endian shape of a cr_op inside the body.
type wireCROp struct {
	Address   uint32
	Mask      uint32
	Value     uint32
	Integrity uint32
}

// wireBody is the packed, little-endian shape of the encrypted patch body.
type wireBody struct {
	KeySeed        uint32
	Reserved0      uint32
	MSRAM          [patchbody.MSRAMWordCount]uint32
	MSRAMIntegrity uint32
	Reserved1      uint32
	CROps          [patchbody.CROpCount]wireCROp
}

// File is a decoded patch file: its header and encrypted body.
type File struct {
	Header Header
	Body   patchbody.Encrypted
}

// Parse decodes a patch file image. It returns patcherr.MalformedFile if
// raw is not exactly Size bytes.
func Parse(raw []byte) (*File, error) {
	if len(raw) != Size {
		return nil, &patcherr.MalformedFile{Reason: fmt.Sprintf("patch file is %d bytes, want %d", len(raw), Size)}
	}

	r := bytes.NewReader(raw)

	var hdr Header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, &patcherr.MalformedFile{Reason: "reading header: " + err.Error()}
	}

	var wb wireBody
	if err := binary.Read(r, binary.LittleEndian, &wb); err != nil {
		return nil, &patcherr.MalformedFile{Reason: "reading body: " + err.Error()}
	}

	f := &File{Header: hdr}
	f.Body.KeySeed = wb.KeySeed
	f.Body.MSRAM = wb.MSRAM
	f.Body.MSRAMIntegrity = wb.MSRAMIntegrity
	for i, op := range wb.CROps {
		f.Body.CROps[i] = patchbody.EncryptedCROp{
			Address:   op.Address,
			Mask:      op.Mask,
			Value:     op.Value,
			Integrity: op.Integrity,
		}
	}
	return f, nil
}

// Marshal packs f into the Size-byte on-disk image.
func (f *File) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(Size)

	hdr := f.Header
	hdr.Reserved = [12]byte{}
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}

	wb := wireBody{
		KeySeed:        f.Body.KeySeed,
		MSRAM:          f.Body.MSRAM,
		MSRAMIntegrity: f.Body.MSRAMIntegrity,
	}
	for i, op := range f.Body.CROps {
		wb.CROps[i] = wireCROp{
			Address:   op.Address,
			Mask:      op.Mask,
			Value:     op.Value,
			Integrity: op.Integrity,
		}
	}
	if err := binary.Write(buf, binary.LittleEndian, wb); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
