/*
Package iteratable implements iteratable container data structures.

Set is a speical purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorihms are often more straightforward
to describe as set constructions and operations.

Sets remember the order of insertion and iterate in this order. An iteration
started with IterateOnce will visit elements which are added while the iteration
is running. This makes fixed-point constructions like
the closure of LR items a simple loop:

    C.IterateOnce()
    for C.Next() {
        C.Union(more(C.Item()))   // new items will be visited later in this loop
    }

Add, Remove and Union are destructive, i.e. they change the receiver.
Difference and Copy return new sets.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
