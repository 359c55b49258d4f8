package orcpb

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/orcmeta/orcmeta/internal/codec"
)

// DecodePostScript decodes the PostScript message.
func DecodePostScript(b []byte) (*PostScript, error) {
	var ps PostScript
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1: // footerLength
			v, n, err := consumeVarint(rest)
			ps.FooterLength = v
			return n, err
		case 2: // compression
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}
			ps.Compression = codec.Kind(v)
			return n, nil
		case 3: // compressionBlockSize
			v, n, err := consumeVarint(rest)
			ps.CompressionBlockSize, ps.HasCompressionBlockSize = v, true
			return n, err
		case 4: // version, packed uint32
			v, n, err := consumePackedUint32(typ, rest)
			if err != nil {
				return 0, err
			}
			ps.Version = append(ps.Version, v...)
			return n, nil
		case 5: // metadataLength
			v, n, err := consumeVarint(rest)
			ps.MetadataLength = v
			return n, err
		case 6: // writerVersion
			v, n, err := consumeVarint(rest)
			ps.WriterVersion, ps.HasWriterVersion = uint32(v), true
			return n, err
		case 7: // stripeStatisticsLength
			v, n, err := consumeVarint(rest)
			ps.StripeStatisticsLength = v
			return n, err
		case 8000: // magic
			v, n, err := consumeString(rest)
			ps.Magic = v
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("orcpb: postscript: %w", err)
	}
	return &ps, nil
}

// DecodeFooter decodes the Footer message.
func DecodeFooter(b []byte) (*Footer, error) {
	var f Footer
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1: // headerLength
			v, n, err := consumeVarint(rest)
			f.HeaderLength = v
			return n, err
		case 2: // contentLength
			v, n, err := consumeVarint(rest)
			f.ContentLength = v
			return n, err
		case 3: // stripes, repeated message
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			si, err := decodeStripeInformation(msg)
			if err != nil {
				return 0, err
			}
			f.Stripes = append(f.Stripes, si)
			return n, nil
		case 4: // types, repeated message
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			t, err := decodeType(msg)
			if err != nil {
				return 0, err
			}
			f.Types = append(f.Types, t)
			return n, nil
		case 5: // metadata, repeated message
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			item, err := decodeUserMetadataItem(msg)
			if err != nil {
				return 0, err
			}
			f.Metadata = append(f.Metadata, item)
			return n, nil
		case 6: // numberOfRows
			v, n, err := consumeVarint(rest)
			f.NumberOfRows = v
			return n, err
		case 7: // statistics, repeated message
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			cs, err := decodeColumnStatistics(msg)
			if err != nil {
				return 0, err
			}
			f.Statistics = append(f.Statistics, cs)
			return n, nil
		case 8: // rowIndexStride
			v, n, err := consumeVarint(rest)
			f.RowIndexStride, f.HasRowIndexStride = uint32(v), true
			return n, err
		case 9: // writerTimezone
			v, n, err := consumeString(rest)
			f.WriterTimezone, f.HasWriterTimezone = v, true
			return n, err
		case 10: // calendar
			v, n, err := consumeVarint(rest)
			f.Calendar, f.HasCalendar = uint32(v), true
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("orcpb: footer: %w", err)
	}
	return &f, nil
}

func decodeStripeInformation(b []byte) (*StripeInformation, error) {
	var si StripeInformation
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			si.Offset = v
			return n, err
		case 2:
			v, n, err := consumeVarint(rest)
			si.IndexLength = v
			return n, err
		case 3:
			v, n, err := consumeVarint(rest)
			si.DataLength = v
			return n, err
		case 4:
			v, n, err := consumeVarint(rest)
			si.FooterLength = v
			return n, err
		case 5:
			v, n, err := consumeVarint(rest)
			si.NumberOfRows = v
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("stripeInformation: %w", err)
	}
	return &si, nil
}

func decodeType(b []byte) (*Type, error) {
	var t Type
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			t.Kind = TypeKind(v)
			return n, err
		case 2:
			v, n, err := consumePackedUint32(typ, rest)
			if err != nil {
				return 0, err
			}
			t.Subtypes = append(t.Subtypes, v...)
			return n, nil
		case 3:
			v, n, err := consumeString(rest)
			if err != nil {
				return 0, err
			}
			t.FieldNames = append(t.FieldNames, v)
			return n, nil
		case 4:
			v, n, err := consumeVarint(rest)
			t.MaximumLength, t.HasMaximumLength = uint32(v), true
			return n, err
		case 5:
			v, n, err := consumeVarint(rest)
			t.Precision, t.HasPrecision = uint32(v), true
			return n, err
		case 6:
			v, n, err := consumeVarint(rest)
			t.Scale, t.HasScale = uint32(v), true
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("type: %w", err)
	}
	return &t, nil
}

func decodeUserMetadataItem(b []byte) (*UserMetadataItem, error) {
	var item UserMetadataItem
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(rest)
			item.Name = v
			return n, err
		case 2:
			v, n, err := consumeBytes(rest)
			item.Value = v
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("userMetadataItem: %w", err)
	}
	return &item, nil
}

func decodeColumnStatistics(b []byte) (*ColumnStatistics, error) {
	var cs ColumnStatistics
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			cs.NumberOfValues, cs.HasNumberOfValues = v, true
			return n, err
		case 2:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			s, err := decodeIntegerStatistics(msg)
			if err != nil {
				return 0, err
			}
			cs.Integer = s
			return n, nil
		case 3:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			s, err := decodeDoubleStatistics(msg)
			if err != nil {
				return 0, err
			}
			cs.Double = s
			return n, nil
		case 4:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			s, err := decodeStringStatistics(msg)
			if err != nil {
				return 0, err
			}
			cs.String = s
			return n, nil
		case 5:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			s, err := decodeBucketStatistics(msg)
			if err != nil {
				return 0, err
			}
			cs.Bucket = s
			return n, nil
		case 6:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			s, err := decodeDecimalStatistics(msg)
			if err != nil {
				return 0, err
			}
			cs.Decimal = s
			return n, nil
		case 7:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			s, err := decodeDateStatistics(msg)
			if err != nil {
				return 0, err
			}
			cs.Date = s
			return n, nil
		case 10:
			v, n, err := consumeVarint(rest)
			cs.HasNull, cs.HasHasNull = v != 0, true
			return n, err
		default: // includes binary (8) and timestamp (9) statistics
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("columnStatistics: %w", err)
	}
	return &cs, nil
}

func decodeIntegerStatistics(b []byte) (*IntegerStatistics, error) {
	var s IntegerStatistics
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			s.Minimum, s.HasMinimum = zigzag64(v), true
			return n, err
		case 2:
			v, n, err := consumeVarint(rest)
			s.Maximum, s.HasMaximum = zigzag64(v), true
			return n, err
		case 3:
			v, n, err := consumeVarint(rest)
			s.Sum, s.HasSum = zigzag64(v), true
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("integerStatistics: %w", err)
	}
	return &s, nil
}

func decodeDoubleStatistics(b []byte) (*DoubleStatistics, error) {
	var s DoubleStatistics
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeFixed64(rest)
			s.Minimum, s.HasMinimum = math.Float64frombits(v), true
			return n, err
		case 2:
			v, n, err := consumeFixed64(rest)
			s.Maximum, s.HasMaximum = math.Float64frombits(v), true
			return n, err
		case 3:
			v, n, err := consumeFixed64(rest)
			s.Sum, s.HasSum = math.Float64frombits(v), true
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("doubleStatistics: %w", err)
	}
	return &s, nil
}

func decodeStringStatistics(b []byte) (*StringStatistics, error) {
	var s StringStatistics
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(rest)
			s.Minimum = v
			return n, err
		case 2:
			v, n, err := consumeString(rest)
			s.Maximum = v
			return n, err
		case 3:
			v, n, err := consumeVarint(rest)
			s.Sum, s.HasSum = zigzag64(v), true
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("stringStatistics: %w", err)
	}
	return &s, nil
}

func decodeBucketStatistics(b []byte) (*BucketStatistics, error) {
	var s BucketStatistics
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumePackedUint64(typ, rest)
			if err != nil {
				return 0, err
			}
			s.Count = append(s.Count, v...)
			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("bucketStatistics: %w", err)
	}
	return &s, nil
}

func decodeDecimalStatistics(b []byte) (*DecimalStatistics, error) {
	var s DecimalStatistics
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(rest)
			s.Minimum, s.HasMinimum = v, true
			return n, err
		case 2:
			v, n, err := consumeString(rest)
			s.Maximum, s.HasMaximum = v, true
			return n, err
		case 3:
			v, n, err := consumeString(rest)
			s.Sum, s.HasSum = v, true
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decimalStatistics: %w", err)
	}
	return &s, nil
}

func decodeDateStatistics(b []byte) (*DateStatistics, error) {
	var s DateStatistics
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			s.Minimum, s.HasMinimum = zigzag32(v), true
			return n, err
		case 2:
			v, n, err := consumeVarint(rest)
			s.Maximum, s.HasMaximum = zigzag32(v), true
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("dateStatistics: %w", err)
	}
	return &s, nil
}

// DecodeMetadata decodes the Metadata message.
func DecodeMetadata(b []byte) (*Metadata, error) {
	var m Metadata
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			ss, err := decodeStripeStatistics(msg)
			if err != nil {
				return 0, err
			}
			m.StripeStats = append(m.StripeStats, ss)
			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("orcpb: metadata: %w", err)
	}
	return &m, nil
}

func decodeStripeStatistics(b []byte) (*StripeStatistics, error) {
	var ss StripeStatistics
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			cs, err := decodeColumnStatistics(msg)
			if err != nil {
				return 0, err
			}
			ss.ColStats = append(ss.ColStats, cs)
			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("stripeStatistics: %w", err)
	}
	return &ss, nil
}

// DecodeStripeFooter decodes a StripeFooter message.
func DecodeStripeFooter(b []byte) (*StripeFooter, error) {
	var sf StripeFooter
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			s, err := decodeStream(msg)
			if err != nil {
				return 0, err
			}
			sf.Streams = append(sf.Streams, s)
			return n, nil
		case 2:
			msg, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}
			ce, err := decodeColumnEncoding(msg)
			if err != nil {
				return 0, err
			}
			sf.Columns = append(sf.Columns, ce)
			return n, nil
		case 3:
			v, n, err := consumeString(rest)
			sf.WriterTimezone, sf.HasWriterTimezone = v, true
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("orcpb: stripeFooter: %w", err)
	}
	return &sf, nil
}

func decodeStream(b []byte) (*Stream, error) {
	var s Stream
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}
			s.RawKind = uint32(v)
			s.Kind, s.Known = streamKindOf(s.RawKind)
			return n, nil
		case 2:
			v, n, err := consumeVarint(rest)
			s.Column = uint32(v)
			return n, err
		case 3:
			v, n, err := consumeVarint(rest)
			s.Length = v
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}
	return &s, nil
}

func streamKindOf(v uint32) (StreamKind, bool) {
	if v < uint32(unknownStreamKind) {
		return StreamKind(v), true
	}
	return unknownStreamKind, false
}

func decodeColumnEncoding(b []byte) (*ColumnEncoding, error) {
	var ce ColumnEncoding
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			ce.Kind = EncodingKind(v)
			return n, err
		case 2:
			v, n, err := consumeVarint(rest)
			ce.DictionarySize, ce.HasDictionarySize = uint32(v), true
			return n, err
		default:
			return skipField(num, typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("columnEncoding: %w", err)
	}
	return &ce, nil
}
