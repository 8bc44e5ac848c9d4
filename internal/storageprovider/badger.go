package storageprovider

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/dgraph-io/badger/v4"

	"github.com/inter-frhug/react-profiler-comparator/internal/storageutil"
)

// Badger implements the storageutil.ObjectHandler interface on an embedded
// badger database, used when the service runs without object storage.
type Badger struct {
	DB *badger.DB
}

// Put writes an object to the database with name being the key. The value
// is buffered and committed on Close.
func (b *Badger) Put(ctx context.Context, name string) (io.WriteCloser, error) {
	return &badgerWriter{
		buf:  &bytes.Buffer{},
		txn:  b.DB.NewTransaction(true),
		name: name,
	}, nil
}

// Get reads an object from the database with name being the key.
// If the key was not found, it returns storageutil.ErrObjectNotFound.
func (b *Badger) Get(ctx context.Context, name string) (storageutil.ReadSizeCloser, error) {
	txn := b.DB.NewTransaction(false)
	item, err := txn.Get([]byte(name))
	if err != nil {
		txn.Discard()
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storageutil.ErrObjectNotFound
		}
		return nil, err
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		txn.Discard()
		return nil, err
	}
	return &badgerReader{
		txn:    txn,
		reader: bytes.NewReader(value),
		size:   int64(len(value)),
	}, nil
}

// badgerWriter implements io.WriteCloser.
type badgerWriter struct {
	buf  *bytes.Buffer
	txn  *badger.Txn
	name string
}

func (bw *badgerWriter) Write(b []byte) (int, error) {
	return bw.buf.Write(b)
}

func (bw *badgerWriter) Close() error {
	err := bw.txn.Set([]byte(bw.name), bw.buf.Bytes())
	if err != nil {
		bw.txn.Discard()
		return err
	}
	return bw.txn.Commit()
}

// badgerReader implements storageutil.ReadSizeCloser.
type badgerReader struct {
	txn    *badger.Txn
	reader io.Reader
	size   int64
}

func (br *badgerReader) Read(p []byte) (int, error) {
	return br.reader.Read(p)
}

func (br *badgerReader) Close() error {
	br.txn.Discard()
	return nil
}

func (br *badgerReader) Size() int64 {
	return br.size
}
